package i18n

import "EnrollHub/entity"

var dictionaries = map[entity.Locale]map[string]string{
	entity.LocaleEnglish: {
		"verify.missing_screenshot":     "Please upload a screenshot of your payment.",
		"verify.missing_link":           "Please provide the payment link.",
		"verify.missing_transaction_id": "Please provide the transaction ID.",
		"verify.amount_mismatch":        "The amount on the receipt does not match the total due.",
		"verify.unknown_type":           "Please choose how you want to prove your payment.",
		"verify.error":                  "We could not verify your payment right now. Please try again.",
		"verify.valid":                  "Payment verified.",
		"verify.link_pending":           "Payment link received.",
		"verify.transaction_pending":    "Transaction ID received.",
		"verify.not_a_receipt":          "This image is not a payment receipt.",
		"verify.unreadable":             "The receipt could not be read. Please upload a clearer screenshot.",
		"verify.rejected":               "The screenshot was not accepted as proof of payment.",
		"validation.required":           "This field is required.",
		"validation.email":              "Please enter a valid email address.",
		"validation.datetime":           "Please enter a date as YYYY-MM-DD.",
		"validation.oneof":              "Please choose one of the listed options.",
		"validation.invalid":            "This value is not valid.",
		"validation.max":                "This value is too long.",
		"enrollment.not_found":          "This enrollment session does not exist or has expired.",
		"enrollment.incomplete":         "Please correct the highlighted fields.",
		"enrollment.completed":          "This enrollment is already complete.",
		"enrollment.in_flight":          "Your payment is being verified. Please wait.",
		"http.not_found":                "Requested resource not found",
		"http.not_allowed":              "Method not allowed",
	},
	entity.LocaleFrench: {
		"verify.missing_screenshot":     "Veuillez téléverser une capture d'écran de votre paiement.",
		"verify.missing_link":           "Veuillez fournir le lien de paiement.",
		"verify.missing_transaction_id": "Veuillez fournir l'identifiant de la transaction.",
		"verify.amount_mismatch":        "Le montant du reçu ne correspond pas au total dû.",
		"verify.unknown_type":           "Veuillez choisir comment prouver votre paiement.",
		"verify.error":                  "Impossible de vérifier votre paiement pour le moment. Veuillez réessayer.",
		"verify.valid":                  "Paiement vérifié.",
		"verify.not_a_receipt":          "Cette image n'est pas un reçu de paiement.",
		"verify.unreadable":             "Le reçu est illisible. Veuillez téléverser une capture plus nette.",
		"verify.rejected":               "La capture d'écran n'a pas été acceptée comme preuve de paiement.",
		"validation.required":           "Ce champ est obligatoire.",
		"validation.email":              "Veuillez saisir une adresse e-mail valide.",
		"enrollment.not_found":          "Cette inscription n'existe pas ou a expiré.",
		"enrollment.incomplete":         "Veuillez corriger les champs indiqués.",
		"enrollment.completed":          "Cette inscription est déjà terminée.",
		"enrollment.in_flight":          "Votre paiement est en cours de vérification. Veuillez patienter.",
		"http.not_found":                "Ressource introuvable",
		"http.not_allowed":              "Méthode non autorisée",
	},
	entity.LocaleArabic: {
		"verify.missing_screenshot": "يرجى تحميل لقطة شاشة للدفع.",
		"verify.amount_mismatch":    "المبلغ في الإيصال لا يطابق المبلغ المستحق.",
		"verify.error":              "تعذر التحقق من الدفع الآن. يرجى المحاولة مرة أخرى.",
		"verify.valid":              "تم التحقق من الدفع.",
		"verify.not_a_receipt":      "هذه الصورة ليست إيصال دفع.",
		"validation.required":       "هذا الحقل مطلوب.",
		"enrollment.incomplete":     "يرجى تصحيح الحقول المشار إليها.",
		"http.not_found":            "المورد المطلوب غير موجود",
	},
}
