package domain

import (
	"fmt"
	"strings"
)

// Placeholder tokens FillTemplate resolves from ticket facts and the weather
// defense. Templates also carry a larger set of user-authored placeholders
// ([SIGN LOCATION], [PERMIT NUMBER], [PAYMENT METHOD], ...) that are
// deliberately left untouched for downstream human completion.
const (
	phTicketNumber      = "[TICKET_NUMBER]"
	phDate              = "[DATE]"
	phLocation          = "[LOCATION]"
	phAmount            = "[AMOUNT]"
	phViolationCode     = "[VIOLATION_CODE]"
	phWeatherDesc       = "[WEATHER_DESCRIPTION]"
	phWeatherParagraph  = "[WEATHER_PARAGRAPH]"
	phSnowfall          = "[SNOWFALL]"
	phWeatherConditions = "[WEATHER_CONDITIONS]"
)

// FillTemplate substitutes the known placeholders in the argument's text with
// concrete values from the context. Substitution is literal, case-sensitive,
// and global. A placeholder whose value is unavailable is left in place so a
// reviewer can spot the gap; replacement values never contain placeholder
// tokens, so filling is idempotent on its own output.
func FillTemplate(arg *ArgumentTemplate, c EvalContext) string {
	text := arg.Text
	facts := c.Facts

	text = replaceIfPresent(text, phTicketNumber, facts.TicketNumber)
	if !facts.Date.IsZero() {
		text = strings.ReplaceAll(text, phDate, facts.Date.Format("January 2, 2006"))
	}
	text = replaceIfPresent(text, phLocation, facts.Location)
	text = replaceIfPresent(text, phViolationCode, facts.ViolationCode)
	if facts.Amount > 0 {
		text = strings.ReplaceAll(text, phAmount, fmt.Sprintf("$%.2f", facts.Amount))
	}

	if c.Weather != nil {
		rec := c.Weather.Record
		text = replaceIfPresent(text, phWeatherDesc, rec.Description)
		text = replaceIfPresent(text, phWeatherParagraph, c.Weather.Paragraph)
		text = strings.ReplaceAll(text, phSnowfall, fmt.Sprintf("%.1f inches", rec.SnowfallInches))
		text = replaceIfPresent(text, phWeatherConditions, strings.Join(rec.Conditions, ", "))
	}

	return text
}

func replaceIfPresent(text, token, value string) string {
	if value == "" {
		return text
	}
	return strings.ReplaceAll(text, token, value)
}
