package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/audition-directory-api/internal/audition"
	"github.com/noah-isme/audition-directory-api/internal/service"
)

const dateLayout = "2006-01-02"

// resolveToday parses --today, falling back to the local calendar day.
func resolveToday(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return audition.DateOf(now), nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q, expected YYYY-MM-DD", raw)
	}
	return parsed, nil
}

// readJSON decodes path into dest.
func readJSON(path string, dest interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	if err := json.Unmarshal(content, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// validateAll checks every element of a slice with the API's validation rules.
func validateAll(items interface{}) error {
	validate := validator.New()
	service.RegisterAuditionValidations(validate)
	if err := validate.Var(items, "dive"); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

func formatKey(key audition.Key, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d", key.Int64())
}
