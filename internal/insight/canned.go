package insight

import (
	"fmt"

	"Astrale/internal/model"
)

// Canned per-aspect fallback texts, used when a single transit
// interpretation cannot be generated.
var cannedByAspect = map[model.AspectType]string{
	model.AspectConjunction: "Le energie di questi pianeti si fondono: è un momento di nuovi inizi su questo tema.",
	model.AspectOpposition:  "Due forze opposte chiedono equilibrio: cerca il punto di incontro invece dello scontro.",
	model.AspectTrine:       "Un flusso armonioso sostiene questo tema: le cose scorrono con meno sforzo del solito.",
	model.AspectSquare:      "Una tensione creativa ti spinge ad agire: l'attrito di oggi è la crescita di domani.",
}

func cannedInterpretation(sig model.TransitSignal) string {
	text, ok := cannedByAspect[sig.Aspect]
	if !ok {
		text = "Il cielo di oggi tocca questo tema in modo sottile: osserva cosa emerge."
	}
	return fmt.Sprintf("%s — %s", sig.Description, text)
}
