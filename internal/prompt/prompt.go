// Package prompt assembles the instructions sent to the LLM analyzer.
package prompt

import (
	"bytes"
	"embed"
	"strings"
	"sync"
	"text/template"

	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/domain"
	"github.com/euisuk-chung/gemini-hak-creator-hub/internal/ontology"
)

// DefaultMaxTranscript is the transcript budget, in runes, sent with each comment.
const DefaultMaxTranscript = 2000

const elision = "\n... (중략) ...\n"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type levelInfo struct {
	Level  domain.Level
	NameKo string
	Min    int
}

var levels = []levelInfo{
	{Level: domain.LevelSafe, NameKo: "안전", Min: 0},
	{Level: domain.LevelMild, NameKo: "경미", Min: 20},
	{Level: domain.LevelModerate, NameKo: "주의", Min: 40},
	{Level: domain.LevelSevere, NameKo: "심각", Min: 60},
	{Level: domain.LevelCritical, NameKo: "매우 심각", Min: 80},
}

var systemPrompt = sync.OnceValue(func() string {
	return render("system.tmpl", struct {
		Nodes  []ontology.Node
		Levels []levelInfo
	}{Nodes: ontology.Nodes(), Levels: levels})
})

// System returns the system prompt describing the taxonomy and the JSON
// reply contract.
func System() string { return systemPrompt() }

// Input is everything known about one comment when the prompt is built.
type Input struct {
	Comment        string
	Transcript     string
	VideoTitle     string
	RuleCategories []domain.Category
	Evidence       []ontology.Evidence
	MaxTranscript  int
}

// BuildUserPrompt renders the user turn: an optional reference block, then
// the comment with or without sampled transcript context.
func BuildUserPrompt(in Input) string {
	var body string
	if strings.TrimSpace(in.Transcript) != "" {
		body = render("user.tmpl", map[string]string{
			"Transcript": SampleTranscript(in.Transcript, in.MaxTranscript),
			"Comment":    in.Comment,
		})
	} else {
		body = render("user_no_context.tmpl", map[string]string{"Comment": in.Comment})
	}

	if ref := ReferenceBlock(in.VideoTitle, in.RuleCategories, in.Evidence); ref != "" {
		return ref + "\n\n" + body
	}
	return body
}

// SampleTranscript keeps transcripts within maxRunes runes by taking equal
// slices from the head, the middle and the tail. maxRunes <= 0 selects
// DefaultMaxTranscript.
func SampleTranscript(transcript string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxTranscript
	}
	runes := []rune(transcript)
	total := len(runes)
	if total <= maxRunes {
		return transcript
	}

	chunk := maxRunes / 3
	midStart := (total - chunk) / 2
	head := string(runes[:chunk])
	middle := string(runes[midStart : midStart+chunk])
	tail := string(runes[total-chunk:])
	return head + elision + middle + elision + tail
}

// ReferenceBlock lists the hints gathered before the LLM call. It returns
// "" when there is nothing to add.
func ReferenceBlock(videoTitle string, ruleCategories []domain.Category, evidence []ontology.Evidence) string {
	var lines []string
	if t := strings.TrimSpace(videoTitle); t != "" {
		lines = append(lines, "영상 제목: "+t)
	}
	if len(ruleCategories) > 0 {
		names := make([]string, len(ruleCategories))
		for i, c := range ruleCategories {
			names[i] = string(c)
		}
		lines = append(lines, "Rule 엔진 사전 탐지: "+strings.Join(names, ", "))
	}
	if len(evidence) > 0 {
		lines = append(lines, "온톨로지 근거:")
		for _, e := range evidence {
			lines = append(lines, "- "+e.String())
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "[레퍼런스]\n" + strings.Join(lines, "\n")
}

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are embedded and fixed; a failure here is a programming error.
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
