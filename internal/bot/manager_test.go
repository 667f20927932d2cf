package bot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

func TestOperatorBookings(t *testing.T) {
	env := newTestEnv(t, mondayNoon(), withOperator(operatorChat))
	ctx := context.Background()
	env.bookings.RecordBooking(ctx, "2025-08-05", "10:00")
	env.bookings.RecordBooking(ctx, "2025-08-05", "11:00")

	env.bot.HandleUpdate(ctx, textUpdate(operatorChat, &tgbotapi.User{ID: 500}, "/bookings"))

	lines := strings.Split(env.api.lastTo(t, operatorChat).Text, "\n")
	if lines[0] != "Заявки на ближайшие 7 дней:" || len(lines) != 8 {
		t.Fatalf("unexpected bookings report %v", lines)
	}
	if lines[1] != "2025-08-04: —" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[2] != "2025-08-05: 10:00, 11:00" {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestOperatorCommands_IgnoredOutsideOperatorChat(t *testing.T) {
	env := newTestEnv(t, mondayNoon(), withOperator(operatorChat))
	env.bot.HandleUpdate(context.Background(), textUpdate(userChat, testUser, "/bookings"))

	if got := env.api.lastTo(t, userChat).Text; got != "Я не до конца понял запрос. Передать оператору?" {
		t.Errorf("non-operator must get regular text handling, got %q", got)
	}
	if len(env.api.messagesTo(operatorChat)) != 0 {
		t.Error("nothing must be sent to operator chat")
	}
}

func TestOperatorExport(t *testing.T) {
	env := newTestEnv(t, mondayNoon(), withOperator(operatorChat))
	ctx := context.Background()
	env.bookings.RecordBooking(ctx, "2025-08-04", "07:00")

	env.bot.HandleUpdate(ctx, textUpdate(operatorChat, &tgbotapi.User{ID: 500}, "/export"))

	var doc *tgbotapi.DocumentConfig
	for _, c := range env.api.sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			doc = &d
		}
	}
	if doc == nil {
		t.Fatal("no document sent")
	}
	if doc.ChatID != operatorChat {
		t.Errorf("document sent to %d", doc.ChatID)
	}

	file, ok := doc.File.(tgbotapi.FileBytes)
	if !ok {
		t.Fatalf("unexpected file type %T", doc.File)
	}
	if file.Name != "bookings_2025-08-04.xlsx" {
		t.Errorf("file name = %q", file.Name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(file.Bytes))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue("Бронирования", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "Занято (1)" {
		t.Errorf("B2 = %q, want booked 07:00 cell", v)
	}
}
