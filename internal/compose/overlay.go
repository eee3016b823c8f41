package compose

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	colorWhite = "white"
	colorGold  = "#FFD700"
	colorGreen = "#00FF00"
	colorRed   = "#FF6B6B"

	defaultCommission = 50.0
)

// Overlay is one timed caption. Start and End are seconds; Y is a fraction
// of the frame height.
type Overlay struct {
	Text     string
	Start    float64
	End      float64
	FontSize int
	Color    string
	Y        float64
}

// Subject carries the opportunity fields the rule-based captions use.
type Subject struct {
	Title          string
	IsAffiliate    bool
	CommissionRate *float64
	Price          *float64
}

var upper = cases.Upper(language.Und)

// AIOverlays spreads up to limit generated captions over the whole video in
// equal consecutive windows.
func AIOverlays(texts []string, total float64, limit int) []Overlay {
	var kept []string
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
		if len(kept) == limit {
			break
		}
	}
	if len(kept) == 0 || total <= 0 {
		return nil
	}

	window := total / float64(len(kept))
	overlays := make([]Overlay, 0, len(kept))
	for i, text := range kept {
		color := colorWhite
		if i%2 == 1 {
			color = colorGold
		}
		overlays = append(overlays, Overlay{
			Text:     text,
			Start:    float64(i) * window,
			End:      float64(i+1) * window,
			FontSize: 50 + i*5,
			Color:    color,
			Y:        0.2 + float64(i)*0.15,
		})
	}
	return overlays
}

// SegmentOverlays clips global overlays to the segment starting at start and
// shifts them to segment-local time.
func SegmentOverlays(global []Overlay, start, length float64) []Overlay {
	end := start + length
	var local []Overlay
	for _, o := range global {
		from := max(o.Start, start)
		to := min(o.End, end)
		if to <= from {
			continue
		}
		o.Start = from - start
		o.End = to - start
		local = append(local, o)
	}
	return local
}

// FallbackOverlays returns the rule-based captions for segment index. The
// first segment carries the hook, later ones a call to action in their back half.
func FallbackOverlays(index int, length float64, subject Subject) []Overlay {
	var overlays []Overlay
	if index == 0 {
		overlays = hookOverlays(length, subject)
	} else {
		overlays = ctaOverlays(length, subject.IsAffiliate)
	}

	valid := overlays[:0]
	for _, o := range overlays {
		if o.End > o.Start && o.Text != "" {
			valid = append(valid, o)
		}
	}
	return valid
}

func hookOverlays(length float64, subject Subject) []Overlay {
	overlays := []Overlay{{
		Text:     upper.String(strings.TrimSpace(subject.Title)),
		Start:    0,
		End:      length * 0.5,
		FontSize: 60,
		Color:    colorWhite,
		Y:        0.2,
	}}
	if !subject.IsAffiliate {
		return overlays
	}

	commission := defaultCommission
	if subject.CommissionRate != nil && *subject.CommissionRate > 0 {
		commission = *subject.CommissionRate
	}
	overlays = append(overlays, Overlay{
		Text:     fmt.Sprintf("SAVE %s%% TODAY", formatNumber(commission)),
		Start:    0.5,
		End:      length * 0.7,
		FontSize: 50,
		Color:    colorGold,
		Y:        0.35,
	})

	if subject.Price != nil && *subject.Price > 0 {
		overlays = append(overlays, Overlay{
			Text:     fmt.Sprintf("ONLY $%s", formatNumber(*subject.Price)),
			Start:    1.0,
			End:      length * 0.8,
			FontSize: 55,
			Color:    colorGreen,
			Y:        0.5,
		})
	}
	return overlays
}

func ctaOverlays(length float64, affiliate bool) []Overlay {
	first, second := "FOLLOW FOR MORE", "SAVE THIS FOR LATER"
	if affiliate {
		first, second = "CLICK LINK BELOW", "LIMITED TIME ONLY"
	}
	return []Overlay{
		{Text: first, Start: length * 0.5, End: length, FontSize: 45, Color: colorWhite, Y: 0.7},
		{Text: second, Start: length * 0.65, End: length, FontSize: 40, Color: colorRed, Y: 0.8},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func drawtextFilter(o Overlay, fontFile string) string {
	var b strings.Builder
	b.WriteString("drawtext=")
	if fontFile != "" {
		b.WriteString("fontfile=")
		b.WriteString(EscapeOptionValue(fontFile))
		b.WriteByte(':')
	}
	fmt.Fprintf(&b,
		"text=%s:fontsize=%d:fontcolor=%s:x=(w-text_w)/2:y=h*%.2f:box=1:boxcolor=black@0.7:boxborderw=20:enable='between(t,%.3f,%.3f)'",
		EscapeText(o.Text), o.FontSize, o.Color, o.Y, o.Start, o.End,
	)
	return b.String()
}
