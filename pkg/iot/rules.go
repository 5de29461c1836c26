package iot

import (
	"fmt"

	"liyu1981.xyz/nest-monitor-service/pkg/models"
)

const (
	MinTemperature float64 = 29.0
	MaxTemperature float64 = 32.0
	MinHumidity    float64 = 65.0
	MaxHumidity    float64 = 75.0
)

type Rule string

const (
	RuleTemperatureHigh Rule = "temperature_high"
	RuleTemperatureLow  Rule = "temperature_low"
	RuleHumidityLow     Rule = "humidity_low"
	RuleHumidityHigh    Rule = "humidity_high"
)

type Violation struct {
	Rule  Rule              `json:"rule"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Level models.AlertLevel `json:"level"`
}

// Classify returns the first rule the reading breaks, or nil. Temperature
// rules take priority: humidity is only looked at when temperature is within
// [MinTemperature, MaxTemperature], so a reading breaking both surfaces as a
// temperature alert only.
func Classify(reading models.Reading) *Violation {
	switch {
	case reading.Temperature > MaxTemperature:
		return &Violation{
			Rule:  RuleTemperatureHigh,
			Title: "Temperature too high",
			Body:  fmt.Sprintf("%s is too hot (%.1f°C). Cool it down!", reading.Name, reading.Temperature),
			Level: models.AlertLevelCritical,
		}
	case reading.Temperature < MinTemperature:
		return &Violation{
			Rule:  RuleTemperatureLow,
			Title: "Temperature too low",
			Body:  fmt.Sprintf("%s is too cold (%.1f°C).", reading.Name, reading.Temperature),
			Level: models.AlertLevelCritical,
		}
	case reading.Humidity < MinHumidity:
		return &Violation{
			Rule:  RuleHumidityLow,
			Title: "Humidity too low",
			Body:  fmt.Sprintf("Humidity in %s dropped to %.1f%%.", reading.Name, reading.Humidity),
			Level: models.AlertLevelCritical,
		}
	case reading.Humidity > MaxHumidity:
		return &Violation{
			Rule:  RuleHumidityHigh,
			Title: "Humidity too high",
			Body:  fmt.Sprintf("Humidity in %s is too high (%.1f%%).", reading.Name, reading.Humidity),
			Level: models.AlertLevelCritical,
		}
	}
	return nil
}
