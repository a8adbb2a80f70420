package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/latafatguliyeva/Skill-sharing-platform/internal/model"
)

var errRequestUsage = errors.New("invalid /request arguments")

// parseRequestArgs разбирает аргументы команды /request.
// Возвращает заявку без learner_id.
func parseRequestArgs(args []string, loc *time.Location, now time.Time) (*model.SessionRequest, error) {
	if len(args) < 6 {
		return nil, errRequestUsage
	}

	teacherID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || teacherID <= 0 {
		return nil, fmt.Errorf("%w: teacher id %q", errRequestUsage, args[0])
	}

	skillID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || skillID <= 0 {
		return nil, fmt.Errorf("%w: skill id %q", errRequestUsage, args[1])
	}

	at, err := time.ParseInLocation(dateLayout+" "+timeLayout, args[2]+" "+args[3], loc)
	if err != nil {
		return nil, fmt.Errorf("%w: time %q %q", errRequestUsage, args[2], args[3])
	}
	if !at.After(now) {
		return nil, fmt.Errorf("%w: time is in the past", errRequestUsage)
	}

	duration, err := strconv.Atoi(args[4])
	if err != nil || duration < RequestMinDuration || duration > RequestMaxDuration {
		return nil, fmt.Errorf("%w: duration %q", errRequestUsage, args[4])
	}

	req := &model.SessionRequest{
		TeacherID:     teacherID,
		SkillID:       skillID,
		RequestedTime: at,
		Duration:      duration,
	}

	switch strings.ToLower(args[5]) {
	case "online", "virtual":
		req.SessionType = model.SessionTypeVirtual
		if len(args) > 6 {
			req.Notes = strings.Join(args[6:], " ")
		}
	case "offline", "in_person":
		req.SessionType = model.SessionTypeInPerson
		req.Location = strings.Join(args[6:], " ")
		if req.Location == "" {
			return nil, fmt.Errorf("%w: location is required", errRequestUsage)
		}
	default:
		return nil, fmt.Errorf("%w: session type %q", errRequestUsage, args[5])
	}

	if len(req.Notes) > RequestNotesMaxLength {
		return nil, fmt.Errorf("%w: notes too long", errRequestUsage)
	}

	return req, nil
}

// commandArgs возвращает аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}
