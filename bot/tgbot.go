package bot

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

// StatsProvider returns the current dashboard figures.
type StatsProvider interface {
	DashboardStats() entity.Stats
}

type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	stats       StatsProvider
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SetStatsProvider(stats StatsProvider) {
	t.stats = stats
}

// Start polls for updates until ctx is cancelled.
func (t *TgBot) Start(ctx context.Context) error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("stats", t.handleStats))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("admin bot started", slog.String("username", t.botUsername))
	go func() {
		<-ctx.Done()
		if err := updater.Stop(); err != nil {
			t.log.Warn("stopping updater", sl.Err(err))
		}
	}()
	updater.Idle()
	t.log.Info("admin bot stopped")
	return nil
}

// handleStats answers /stats in the admin chat only.
func (t *TgBot) handleStats(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveChat.Id
	if chatId != t.adminId {
		t.log.With(slog.Int64("id", chatId)).Debug("stats requested outside admin chat")
		return nil
	}
	if t.stats == nil {
		t.plainResponse(chatId, "Statistics are not available yet.")
		return nil
	}
	t.plainResponse(chatId, FormatStats(t.stats.DashboardStats()))
	return nil
}

// SendMessage sends text to the admin chat.
func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

// RegistrationCreated notifies the admin about a new registration.
func (t *TgBot) RegistrationCreated(reg entity.Registration) {
	t.plainResponse(t.adminId, FormatRegistration(reg))
}

func FormatRegistration(reg entity.Registration) string {
	var b strings.Builder
	b.WriteString("*New registration*\n")
	fmt.Fprintf(&b, "Student: %s\n", reg.Student.FullName)
	fmt.Fprintf(&b, "Email: %s\n", reg.Student.Email)
	fmt.Fprintf(&b, "Program: %s / %s\n", reg.Selection.SchoolLevel, reg.Selection.ProgramID)
	if len(reg.Selection.SelectedCourses) > 0 {
		fmt.Fprintf(&b, "Courses: %s\n", strings.Join(reg.Selection.SelectedCourses, ", "))
	}
	fmt.Fprintf(&b, "Total: %.2f\n", reg.CalculatedPrice)
	fmt.Fprintf(&b, "Proof: %s", reg.PaymentProof.Type)
	if reg.Verification != nil && reg.Verification.TransactionNumber != "" {
		fmt.Fprintf(&b, " (%s)", reg.Verification.TransactionNumber)
	}
	return b.String()
}

// FormatStats renders the dashboard figures, programs by descending count.
func FormatStats(st entity.Stats) string {
	programs := make([]entity.ProgramCount, 0, len(st.Programs))
	for _, p := range st.Programs {
		programs = append(programs, p)
	}
	sort.Slice(programs, func(i, j int) bool {
		if programs[i].Count != programs[j].Count {
			return programs[i].Count > programs[j].Count
		}
		return programs[i].ProgramID < programs[j].ProgramID
	})

	var b strings.Builder
	fmt.Fprintf(&b, "*Registrations:* %d\n", st.Registrations)
	fmt.Fprintf(&b, "Male: %d, Female: %d\n", st.Gender.Male, st.Gender.Female)
	for _, p := range programs {
		fmt.Fprintf(&b, "%s: %d\n", p.Label, p.Count)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(text)
	if sanitized == "" {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		t.log.With(
			slog.Int64("id", chatId),
		).Warn("sending message", sl.Err(err))
		_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Error("sending safe message", sl.Err(err))
		}
	}
}

// sanitize escapes MarkdownV2 reserved characters; * is kept for bold text.
func sanitize(input string) string {
	const reservedChars = "\\`_{}#+-.!|()[]=>~"

	var b strings.Builder
	b.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
