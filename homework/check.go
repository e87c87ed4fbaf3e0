package homework

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// CheckResponse asserts the answer is an object carrying both homeworks and
// current_date and returns the homework records, possibly none.
func CheckResponse(resp gjson.Result) ([]gjson.Result, error) {
	if !resp.IsObject() {
		return nil, fmt.Errorf("%w: answer is %v, want object", ErrMalformedShape, typeName(resp))
	}

	homeworks := resp.Get("homeworks")
	if !homeworks.Exists() || !resp.Get("current_date").Exists() {
		return nil, fmt.Errorf("%w: homeworks or current_date key is absent", ErrEmptyResponse)
	}
	if !homeworks.IsArray() {
		return nil, fmt.Errorf("%w: homeworks is %v, want array", ErrMalformedShape, typeName(homeworks))
	}

	return homeworks.Array(), nil
}

// CurrentDate returns current_date when the answer carries it as an integer.
func CurrentDate(resp gjson.Result) (int64, bool) {
	date := resp.Get("current_date")
	if date.Type != gjson.Number {
		return 0, false
	}
	if float64(date.Int()) != date.Float() {
		return 0, false
	}
	return date.Int(), true
}

func typeName(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	default:
		return r.Type.String()
	}
}
