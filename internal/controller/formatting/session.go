package formatting

import (
	"fmt"
	"strings"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
)

// FormatRequest форматирует заявку на занятие
func FormatRequest(req *model.SessionRequest) string {
	display := GetRequestStatusDisplay(req.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Заявка #%d\n\n", display.Emoji, req.ID)
	fmt.Fprintf(&sb, "📚 Навык: #%d\n", req.SkillID)
	fmt.Fprintf(&sb, "🕐 Время: %s (%s)\n", FormatDateTime(req.RequestedTime), FormatDuration(req.Duration))
	fmt.Fprintf(&sb, "%s\n", GetSessionTypeText(req.SessionType))
	if req.Location != "" {
		fmt.Fprintf(&sb, "📍 Место: %s\n", req.Location)
	}
	if req.Notes != "" {
		fmt.Fprintf(&sb, "📝 %s\n", req.Notes)
	}
	fmt.Fprintf(&sb, "📊 Статус: %s", display.Text)
	if req.ResponseMessage != "" {
		fmt.Fprintf(&sb, "\n💬 Ответ учителя: %s", req.ResponseMessage)
	}

	return sb.String()
}

// FormatSession форматирует сессию вместе с данными встречи
func FormatSession(s *model.Session) string {
	display := GetSessionStatusDisplay(s.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Занятие #%d\n\n", display.Emoji, s.ID)
	fmt.Fprintf(&sb, "📚 Навык: #%d\n", s.SkillID)
	fmt.Fprintf(&sb, "🕐 %s, %s\n", FormatDateTime(s.ScheduledTime), FormatTimeRange(s.ScheduledTime, s.EndTime()))
	fmt.Fprintf(&sb, "%s\n", GetSessionTypeText(s.SessionType))

	switch {
	case s.IsVirtual() && s.HasMeeting():
		fmt.Fprintf(&sb, "🔗 %s", s.MeetingURL)
		if !s.IsRealMeeting() {
			sb.WriteString("\n⚠️ Ссылка создана без Google Calendar, договоритесь о встрече отдельно")
		}
	case s.Location != "":
		fmt.Fprintf(&sb, "📍 Место: %s", s.Location)
	}

	return strings.TrimRight(sb.String(), "\n")
}
