package services

import (
	"fmt"

	"github.com/healthsnap/summarizer/models"
)

// NotSureDisclaimer is the sentence the QA prompt asks the model to return
// when the note lacks the answer. The quality gate rejects it.
const NotSureDisclaimer = "I'm not sure based on the summary. Please consult a doctor."

const (
	hindiSummaryTemplate = "निम्नलिखित चिकित्सा नोट को सरल, रोगी-अनुकूल हिंदी में संक्षेप करें। " +
		"सभी अनुभाग शीर्षकों और सामग्री को देवनागरी लिपि में अनुवादित करें। " +
		"किसी भी शब्द को ** जैसे मार्कडाउन चिह्नों से बोल्ड न करें।\n\n%s"

	spanishSummaryTemplate = "Escribe un resumen de la siguiente nota clínica utilizando un lenguaje sencillo y comprensible para el paciente. " +
		"Asegúrate de traducir todos los títulos y secciones al español. Responde solo en español. " +
		"No uses formato markdown como ** para resaltar texto.\n\n%s"

	frenchSummaryTemplate = "Rédigez un résumé de la note clinique suivante en utilisant un langage clair et facile à comprendre pour le patient. " +
		"Veuillez traduire tous les titres et sections en français. Répondez uniquement en français. " +
		"N'utilisez pas de mise en forme markdown comme ** pour mettre du texte en gras.\n\n%s"

	// Filled with the language name, then the note.
	defaultSummaryTemplate = "Summarize the following clinical note in simple, patient-friendly English. " +
		"Translate all section headings and content into %s. " +
		"Do not use markdown emphasis such as ** around words.\n\n%s"

	qaTemplate = "You are a helpful and cautious medical assistant. " +
		"You should prioritize answering from the clinical summary below. " +
		"If the answer is clearly stated in the summary, extract it. " +
		"If the summary does not include the answer, respond with: " +
		"'" + NotSureDisclaimer + "'\n\n" +
		"Clinical Summary:\n%s\n\n" +
		"User Question:\n%s"
)

// BuildSummaryPrompt picks the template for lang. Hindi, Spanish and French
// have natively written instructions; every other language, English
// included, gets the English template naming lang as the translation target.
func BuildSummaryPrompt(note string, lang models.Language) string {
	lang = lang.Normalize()
	switch {
	case lang.Is(models.Hindi):
		return fmt.Sprintf(hindiSummaryTemplate, note)
	case lang.Is(models.Spanish):
		return fmt.Sprintf(spanishSummaryTemplate, note)
	case lang.Is(models.French):
		return fmt.Sprintf(frenchSummaryTemplate, note)
	default:
		return fmt.Sprintf(defaultSummaryTemplate, lang, note)
	}
}

// BuildQAPrompt is language-invariant.
func BuildQAPrompt(note, question string) string {
	return fmt.Sprintf(qaTemplate, note, question)
}
