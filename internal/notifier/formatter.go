package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"Astrale/internal/model"
)

// FormatMorningReport formats the morning message: horoscope, the top
// transits behind it, and the lunar event if one is in view.
func FormatMorningReport(horoscope string, signals []model.TransitSignal, event *model.LunarEvent, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✨ <b>Il tuo cielo di oggi</b> | %s\n\n", generatedAt.Format("2006-01-02")))
	b.WriteString(horoscope)
	b.WriteString("\n")

	if len(signals) > 0 {
		b.WriteString("\n🪐 <b>Transiti in evidenza:</b>\n")
		for _, sig := range signals {
			b.WriteString(fmt.Sprintf("  • %s (%.1f)\n", sig.Description, sig.Significance))
		}
	} else {
		b.WriteString("\n🪐 Cielo tranquillo oggi: nessun transito di rilievo.\n")
	}

	if event != nil {
		b.WriteString(fmt.Sprintf("\n🌙 <b>%s in %s</b> (%s)\n",
			event.Phase.Italian(), event.Sign, event.Date.Format("2 January")))
	}

	b.WriteString(fmt.Sprintf("\n<i>%s</i>", humanize.Time(generatedAt)))
	return b.String()
}
