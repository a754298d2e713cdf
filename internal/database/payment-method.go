package repository

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/translation"
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
)

func (m *MongoDB) GetPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	docs, err := m.rawDocuments(ctx, paymentMethodsCollection, bson.D{{Key: "_id", Value: 1}})
	if err != nil {
		return nil, err
	}

	methods := make([]entity.PaymentMethod, 0, len(docs))
	for _, doc := range docs {
		record := m.normalizer.Normalize(doc, "_id", translation.PaymentMethodSchema)
		var method entity.PaymentMethod
		if err = record.Decode(&method); err != nil {
			m.log.With(slog.String("payment_method", record.ID), sl.Err(err)).Warn("skipping payment method")
			continue
		}
		methods = append(methods, method)
	}
	return methods, nil
}

func (m *MongoDB) UpsertPaymentMethod(ctx context.Context, method *entity.PaymentMethod) error {
	return m.upsert(ctx, paymentMethodsCollection, method.Value, method)
}

func (m *MongoDB) DeletePaymentMethod(ctx context.Context, value string) error {
	return m.delete(ctx, paymentMethodsCollection, value)
}
