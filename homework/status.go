package homework

import (
	"fmt"

	"github.com/homeworkbot/models"
	"github.com/tidwall/gjson"
)

const (
	NoNewStatuses = "Новые статусы отсутствуют."

	statusChanged = `Изменился статус проверки работы "%s". %s`
)

var verdicts = map[string]string{
	"approved":  "Ревьюеру всё понравилось, работа зачтена!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict looks a status code up in the verdict table.
func Verdict(status string) (string, bool) {
	verdict, ok := verdicts[status]
	return verdict, ok
}

// ParseStatus renders the notification text for one homework record.
func ParseStatus(record gjson.Result) (string, error) {
	hw, err := decode(record)
	if err != nil {
		return "", err
	}

	verdict, ok := Verdict(hw.Status)
	if !ok {
		return "", fmt.Errorf("%w: %q of homework %q", ErrUnknownStatus, hw.Status, hw.Name)
	}

	return fmt.Sprintf(statusChanged, hw.Name, verdict), nil
}

func decode(record gjson.Result) (models.Homework, error) {
	if !record.IsObject() {
		return models.Homework{}, fmt.Errorf("%w: homework record is %v, want object", ErrMalformedShape, typeName(record))
	}

	name := record.Get("homework_name")
	if !name.Exists() {
		return models.Homework{}, fmt.Errorf("%w: homework_name", ErrMissingField)
	}
	status := record.Get("status")
	if !status.Exists() {
		return models.Homework{}, fmt.Errorf("%w: status of homework %q is absent", ErrUnknownStatus, name.String())
	}

	return models.Homework{
		ID:              record.Get("id").Int(),
		Name:            name.String(),
		Status:          status.String(),
		ReviewerComment: record.Get("reviewer_comment").String(),
		LessonName:      record.Get("lesson_name").String(),
		DateUpdated:     record.Get("date_updated").String(),
	}, nil
}
