package compose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts_pipeline/internal/testutil"
)

func TestPlan_UniformSplit(t *testing.T) {
	for _, tc := range []struct {
		duration float64
		count    int
	}{
		{12, 3}, {10, 7}, {0.5, 1}, {59.987, 4}, {31.4159, 11},
	} {
		plan := Plan(tc.duration, tc.count, 3)
		assert.False(t, plan.Estimated)
		assert.Equal(t, tc.count, plan.Count)
		assert.InDelta(t, tc.duration, plan.PerSegment*float64(plan.Count), 1e-9)
	}
}

func TestPlan_ZeroImagesTreatedAsOne(t *testing.T) {
	plan := Plan(9, 0, 3)

	assert.Equal(t, 1, plan.Count)
	assert.Equal(t, 9.0, plan.PerSegment)
}

func TestPlan_UnmeasurableDurationUsesFloor(t *testing.T) {
	for _, d := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		plan := Plan(d, 2, 3)
		assert.True(t, plan.Estimated)
		assert.Equal(t, 3.0, plan.PerSegment)
		assert.Equal(t, 6.0, plan.Total)
	}
}

func TestAIOverlays_EvenWindowsCappedAtLimit(t *testing.T) {
	overlays := AIOverlays([]string{"one", " ", "two", "three", "four", "five", "six"}, 20, 5)

	require.Len(t, overlays, 5)
	for i, o := range overlays {
		assert.InDelta(t, float64(i)*4, o.Start, 1e-9)
		assert.InDelta(t, float64(i+1)*4, o.End, 1e-9)
		assert.Equal(t, 50+i*5, o.FontSize)
	}
	assert.Equal(t, "two", overlays[1].Text)
	assert.Equal(t, colorWhite, overlays[0].Color)
	assert.Equal(t, colorGold, overlays[1].Color)
}

func TestAIOverlays_Empty(t *testing.T) {
	assert.Nil(t, AIOverlays([]string{"", "  "}, 10, 5))
	assert.Nil(t, AIOverlays([]string{"a"}, 0, 5))
}

func TestSegmentOverlays_ClipsAndShifts(t *testing.T) {
	global := []Overlay{
		{Text: "a", Start: 0, End: 5},
		{Text: "b", Start: 5, End: 10},
		{Text: "c", Start: 10, End: 15},
	}

	local := SegmentOverlays(global, 4, 4)

	require.Len(t, local, 2)
	assert.Equal(t, "a", local[0].Text)
	assert.InDelta(t, 0, local[0].Start, 1e-9)
	assert.InDelta(t, 1, local[0].End, 1e-9)
	assert.Equal(t, "b", local[1].Text)
	assert.InDelta(t, 1, local[1].Start, 1e-9)
	assert.InDelta(t, 4, local[1].End, 1e-9)
}

func TestFallbackOverlays_AffiliateHook(t *testing.T) {
	overlays := FallbackOverlays(0, 10, Subject{
		Title:          "focus timer pro",
		IsAffiliate:    true,
		CommissionRate: testutil.Ptr(37.5),
		Price:          testutil.Ptr(19.99),
	})

	require.Len(t, overlays, 3)
	assert.Equal(t, "FOCUS TIMER PRO", overlays[0].Text)
	assert.Equal(t, "SAVE 37.5% TODAY", overlays[1].Text)
	assert.Equal(t, "ONLY $19.99", overlays[2].Text)
	for _, o := range overlays {
		assert.LessOrEqual(t, o.End, 8.0)
	}
}

func TestFallbackOverlays_HookDefaults(t *testing.T) {
	overlays := FallbackOverlays(0, 10, Subject{Title: "gadget", IsAffiliate: true})

	require.Len(t, overlays, 2)
	assert.Equal(t, "SAVE 50% TODAY", overlays[1].Text)
}

func TestFallbackOverlays_OrganicHookHasNoOffer(t *testing.T) {
	overlays := FallbackOverlays(0, 10, Subject{
		Title:          "5 habits of focused people",
		CommissionRate: testutil.Ptr(40.0),
		Price:          testutil.Ptr(9.0),
	})

	require.Len(t, overlays, 1)
	assert.Equal(t, "5 HABITS OF FOCUSED PEOPLE", overlays[0].Text)
}

func TestFallbackOverlays_CallToActionInBackHalf(t *testing.T) {
	affiliate := FallbackOverlays(2, 8, Subject{IsAffiliate: true})
	organic := FallbackOverlays(1, 8, Subject{})

	require.Len(t, affiliate, 2)
	assert.Equal(t, "CLICK LINK BELOW", affiliate[0].Text)
	assert.Equal(t, "FOLLOW FOR MORE", organic[0].Text)
	for _, o := range append(affiliate, organic...) {
		assert.GreaterOrEqual(t, o.Start, 4.0)
		assert.Equal(t, 8.0, o.End)
	}
}

func TestFallbackOverlays_ShortSegmentDropsEmptyWindows(t *testing.T) {
	overlays := FallbackOverlays(0, 0.6, Subject{Title: "x", IsAffiliate: true, Price: testutil.Ptr(1.0)})

	require.Len(t, overlays, 1)
	assert.Equal(t, "X", overlays[0].Text)
}

func TestEscapeText_RoundTrip(t *testing.T) {
	for _, text := range []string{
		`It's "great": (really), isn't it?`,
		`50% OFF [today]; a=b \ done`,
		"plain words",
		"",
	} {
		escaped := EscapeText(text)
		require.NoError(t, ValidateFilterText(escaped), text)

		back, err := unescapeText(escaped)
		require.NoError(t, err)
		assert.Equal(t, text, back)
	}
}

func TestEscapeText_FoldsControlCharacters(t *testing.T) {
	back, err := unescapeText(EscapeText("line one\nline two\t"))

	require.NoError(t, err)
	assert.Equal(t, "line one line two", back)
}

func TestValidateFilterText_RejectsBareSpecials(t *testing.T) {
	for _, raw := range []string{"it's", "a,b", "a:b", "50%", `trailing\`} {
		assert.Error(t, ValidateFilterText(raw), raw)
	}
}

func TestDrawtextFilter(t *testing.T) {
	f := drawtextFilter(Overlay{Text: "Hi, you", Start: 1, End: 2.5, FontSize: 50, Color: colorGold, Y: 0.35}, "/fonts/Bold Font.ttf")

	assert.Equal(t,
		`drawtext=fontfile=/fonts/Bold Font.ttf:text=Hi\, you:fontsize=50:fontcolor=#FFD700:x=(w-text_w)/2:y=h*0.35:box=1:boxcolor=black@0.7:boxborderw=20:enable='between(t,1.000,2.500)'`,
		f,
	)
}
