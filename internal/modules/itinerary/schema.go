package itinerary

import "fmt"

var (
	itineraryStringFields = []string{"tripName", "origin", "destination", "startDate", "endDate"}
	itineraryDateFields   = []string{"startDate", "endDate"}
	dayStringFields       = []string{"day", "summary"}
	dayListFields         = []string{"flights", "hotels"}
	activityStringFields  = []string{"time", "description"}
)

func schemaError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaViolation, fmt.Sprintf(format, args...))
}

// checkSchema verifies field presence and types of a decoded itinerary object.
func checkSchema(obj map[string]any) error {
	for _, f := range itineraryStringFields {
		if err := requireString(obj, f, f); err != nil {
			return err
		}
	}
	for _, f := range itineraryDateFields {
		if _, err := ParseDate(obj[f].(string)); err != nil {
			return schemaError("%s must be a YYYY-MM-DD date, got %q", f, obj[f])
		}
	}

	rawDays, ok := obj["days"].([]any)
	if !ok {
		return schemaError("days must be an array")
	}
	if len(rawDays) == 0 {
		return schemaError("days must not be empty")
	}

	for i, rd := range rawDays {
		day, ok := rd.(map[string]any)
		if !ok {
			return schemaError("days[%d] must be an object", i)
		}
		if err := checkDay(day, fmt.Sprintf("days[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func checkDay(day map[string]any, path string) error {
	for _, f := range dayStringFields {
		if err := requireString(day, f, path+"."+f); err != nil {
			return err
		}
	}

	for _, f := range dayListFields {
		v, present := day[f]
		if !present || v == nil {
			// Models routinely omit empty lists; treat as [].
			day[f] = []any{}
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return schemaError("%s.%s must be an array of strings", path, f)
		}
		for j, item := range list {
			if _, ok := item.(string); !ok {
				return schemaError("%s.%s[%d] must be a string", path, f, j)
			}
		}
	}

	acts, ok := day["activities"].([]any)
	if !ok {
		return schemaError("%s.activities must be an array", path)
	}
	for j, ra := range acts {
		act, ok := ra.(map[string]any)
		if !ok {
			return schemaError("%s.activities[%d] must be an object", path, j)
		}
		for _, f := range activityStringFields {
			if err := requireString(act, f, fmt.Sprintf("%s.activities[%d].%s", path, j, f)); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireString(obj map[string]any, key, path string) error {
	v, present := obj[key]
	if !present {
		return schemaError("missing %s", path)
	}
	if _, ok := v.(string); !ok {
		return schemaError("%s must be a string", path)
	}
	return nil
}
