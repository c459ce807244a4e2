package gemini

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	errx "github.com/mindmate-ai/server/internal/core/error"
	"github.com/mindmate-ai/server/internal/mood"
	logx "github.com/mindmate-ai/server/pkg/logger"
)

const (
	recDelim = "##"
	tupDelim = "<||>"
	endDelim = "<|COMPLETE|>"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 32 * 1024 // 32KB
	maxRecords    = 50        // maximum number of records to process
	maxTupleLen   = 1024      // 1KB per tuple
	maxErrSnippet = 120       // limit error snippet size
)

type rawTuple struct {
	Type  string
	Parts []string
}

func parseRawTuple(s string) (*rawTuple, error) {
	if s == "" {
		return nil, fmt.Errorf("empty tuple")
	}
	if len(s) > maxTupleLen {
		return nil, fmt.Errorf("tuple too large")
	}

	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("invalid tuple parens")
	}
	inner := s[1 : len(s)-1]
	parts := strings.SplitN(inner, tupDelim, 4)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid tuple parts")
	}
	return &rawTuple{Type: strings.TrimSpace(parts[0]), Parts: parts}, nil
}

func mustValidUTF8(s string, name string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s invalid utf8", name)
	}
	return nil
}

func parseFloatInRange(s, name string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s invalid number", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s out of range", name)
	}
	return v, nil
}

// ParseLabelScores extracts emotion tuples from raw model output. Malformed
// records are skipped and logged; an error is returned only when no valid
// record survives.
func ParseLabelScores(content string) (scores []mood.LabelScore, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "score_parser").Msgf("panic recovered: %v", r)
			err = errx.New(fmt.Errorf("score parser panic"), http.StatusInternalServerError, errx.SystemErrorMessage)
			scores = nil
		}
	}()

	records, parseErrs := splitRecords(content)

	scores = make([]mood.LabelScore, 0, len(records))
	for _, rec := range records {
		rt, rerr := parseRawTuple(rec)
		if rerr != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("bad_record: %s", safeSnippet(rec)))
			continue
		}
		if rt.Type != "emotion" {
			parseErrs = append(parseErrs, "unexpected tuple type")
			continue
		}

		label := strings.ToLower(strings.TrimSpace(rt.Parts[1]))
		if verr := mustValidUTF8(label, "emotion.label"); verr != nil || label == "" {
			parseErrs = append(parseErrs, "emotion: invalid label utf8")
			continue
		}
		score, serr := parseFloatInRange(rt.Parts[2], "emotion.score", 0, 1)
		if serr != nil {
			parseErrs = append(parseErrs, "emotion: invalid score")
			continue
		}
		scores = append(scores, mood.LabelScore{Label: label, Score: score})
	}

	logParseErrs("score_parser", parseErrs)

	if len(scores) == 0 {
		return nil, errx.New(fmt.Errorf("no valid emotion records"), http.StatusUnprocessableEntity, errx.ScorerErrorMessage)
	}
	return scores, nil
}

// ParseSentiment extracts the first valid sentiment tuple from raw model
// output.
func ParseSentiment(content string) (result mood.SentimentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "sentiment_parser").Msgf("panic recovered: %v", r)
			err = errx.New(fmt.Errorf("sentiment parser panic"), http.StatusInternalServerError, errx.SystemErrorMessage)
			result = mood.SentimentResult{}
		}
	}()

	records, parseErrs := splitRecords(content)

	for _, rec := range records {
		rt, rerr := parseRawTuple(rec)
		if rerr != nil {
			parseErrs = append(parseErrs, fmt.Sprintf("bad_record: %s", safeSnippet(rec)))
			continue
		}
		if rt.Type != "sentiment" {
			parseErrs = append(parseErrs, "unexpected tuple type")
			continue
		}

		label := strings.ToLower(strings.TrimSpace(rt.Parts[1]))
		switch label {
		case "positive", "negative", "neutral":
		default:
			parseErrs = append(parseErrs, "sentiment: unknown label")
			continue
		}
		conf, serr := parseFloatInRange(rt.Parts[2], "sentiment.confidence", 0, 1)
		if serr != nil {
			parseErrs = append(parseErrs, "sentiment: invalid confidence")
			continue
		}

		logParseErrs("sentiment_parser", parseErrs)
		return mood.SentimentResult{Label: label, Score: conf}, nil
	}

	logParseErrs("sentiment_parser", parseErrs)
	return mood.SentimentResult{}, errx.New(fmt.Errorf("no valid sentiment record"), http.StatusUnprocessableEntity, errx.ScorerErrorMessage)
}

// splitRecords applies the content guards and returns the raw record
// strings alongside any guard warnings.
func splitRecords(content string) ([]string, []string) {
	var parseErrs []string

	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "score_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
		parseErrs = append(parseErrs, "content truncated")
	}
	// honor completion delimiter if present
	if idx := strings.Index(content, endDelim); idx >= 0 {
		content = content[:idx]
	}

	raw := strings.Split(content, recDelim)
	records := make([]string, 0, len(raw))
	for _, rec := range raw {
		if len(records) >= maxRecords {
			parseErrs = append(parseErrs, "records capped")
			logx.Warn().
				Str("component", "score_parser").
				Int("max_records", maxRecords).
				Msg("record processing capped")
			break
		}
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, parseErrs
}

func logParseErrs(component string, parseErrs []string) {
	if len(parseErrs) == 0 {
		return
	}
	logx.Warn().
		Str("component", component).
		Int("error_count", len(parseErrs)).
		Strs("errors", parseErrs).
		Msg("parser skipped malformed records")
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
