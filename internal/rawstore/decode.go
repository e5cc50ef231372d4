package rawstore

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"li-sourcer/internal/engine"
)

// Key aliases seen across providers for the same logical field.
var (
	nameKeys       = []string{"name", "full_name", "fullName", "title"}
	locationKeys   = []string{"location", "city", "region", "locality"}
	companyKeys    = []string{"company", "current_company", "currentCompany"}
	languageKeys   = []string{"languages", "language", "languageSkills"}
	experienceKeys = []string{"experience", "positions", "work_history", "experiences"}
	educationKeys  = []string{"education", "schools", "educations"}
)

// stintEntry covers the employment-entry shapes providers return. Dates may
// be plain strings or {month, year} objects, the employer a string or a
// {name} object.
type stintEntry struct {
	Company      any    `mapstructure:"company"`
	CompanyName  any    `mapstructure:"companyName"`
	Organization any    `mapstructure:"organization"`
	Title        string `mapstructure:"title"`
	Position     string `mapstructure:"position"`
	Role         string `mapstructure:"role"`
	Start        any    `mapstructure:"start"`
	StartDate    any    `mapstructure:"startDate"`
	StartSnake   any    `mapstructure:"start_date"`
	End          any    `mapstructure:"end"`
	EndDate      any    `mapstructure:"endDate"`
	EndSnake     any    `mapstructure:"end_date"`
}

type schoolEntry struct {
	School      any `mapstructure:"school"`
	SchoolName  any `mapstructure:"schoolName"`
	Institution any `mapstructure:"institution"`
}

// Profile decodes the capture's raw payload into an engine record. Payload
// shape varies by provider, so lookups accept key aliases and values may be
// strings, objects or embedded JSON. Anything undecodable resolves to its
// zero value; this never fails.
func (c *Capture) Profile() *engine.RawProfile {
	profile := &engine.RawProfile{URL: c.URL}

	payload := payloadMap(c.RawData)
	if payload == nil {
		return profile
	}

	profile.Name = firstString(payload, nameKeys...)
	profile.Location = firstString(payload, locationKeys...)
	profile.CurrentCompany = namedValue(firstValue(payload, companyKeys...))
	profile.Languages = languageNames(firstValue(payload, languageKeys...))
	profile.Experiences = decodeStints(listValue(payload, experienceKeys...))
	profile.Educations = decodeSchools(listValue(payload, educationKeys...))

	return profile
}

// payloadMap normalizes the raw payload into a key/value map: JSON strings
// are parsed and a single "data" envelope is unwrapped.
func payloadMap(raw any) map[string]any {
	switch typed := raw.(type) {
	case map[string]any:
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(typed), &parsed); err != nil {
			return nil
		}
		if nested, ok := parsed.(map[string]any); ok {
			return payloadMap(nested)
		}
		return nil
	default:
		return nil
	}
}

func firstValue(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := m[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := valueString(m[key]); value != "" {
			return value
		}
	}
	return ""
}

func listValue(m map[string]any, keys ...string) []any {
	switch typed := firstValue(m, keys...).(type) {
	case []any:
		return typed
	case string:
		// Some providers embed the list as a JSON string.
		var parsed []any
		if err := json.Unmarshal([]byte(typed), &parsed); err == nil {
			return parsed
		}
	}
	return nil
}

func valueString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		// Covers JSON numbers; years and months arrive as integers and %v
		// prints float64(2010) as "2010".
		return strings.TrimSpace(fmt.Sprintf("%v", typed))
	}
}

// namedValue accepts a value as a plain string or a {name: ...} object.
func namedValue(v any) string {
	if m, ok := v.(map[string]any); ok {
		return valueString(m["name"])
	}
	return valueString(v)
}

// dateString flattens a date value into a parseable string. Object dates
// become "<month> <year>".
func dateString(v any) string {
	if m, ok := v.(map[string]any); ok {
		month := valueString(m["month"])
		year := valueString(m["year"])
		return strings.TrimSpace(month + " " + year)
	}
	return valueString(v)
}

func decodeStints(entries []any) []engine.Experience {
	var stints []engine.Experience
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		var stint stintEntry
		if err := weakDecode(entry, &stint); err != nil {
			continue
		}

		stints = append(stints, engine.Experience{
			Company: namedValue(coalesce(stint.Company, stint.CompanyName, stint.Organization)),
			Title:   coalesceString(stint.Title, stint.Position, stint.Role),
			Start:   engine.ParseDate(dateString(coalesce(stint.Start, stint.StartDate, stint.StartSnake))),
			End:     engine.ParseDate(dateString(coalesce(stint.End, stint.EndDate, stint.EndSnake))),
		})
	}
	return stints
}

func decodeSchools(entries []any) []engine.Education {
	var schools []engine.Education
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		var school schoolEntry
		if err := weakDecode(entry, &school); err != nil {
			continue
		}

		name := namedValue(coalesce(school.School, school.SchoolName, school.Institution))
		if name == "" {
			continue
		}
		schools = append(schools, engine.Education{School: name})
	}
	return schools
}

func languageNames(v any) []string {
	switch typed := v.(type) {
	case string:
		var names []string
		for _, part := range strings.Split(typed, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		return names
	case []any:
		var names []string
		for _, entry := range typed {
			if name := namedValue(entry); name != "" {
				names = append(names, name)
			}
		}
		return names
	default:
		return nil
	}
}

func weakDecode(input map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func coalesce(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func coalesceString(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
