package dial

import (
	"strings"
	"testing"

	"github.com/famdash/famdash/internal/model"
)

func TestWriteSVGBounded(t *testing.T) {
	h := newHarness(t, model.KindSpending, 750, 1000)
	opts := DefaultSVGOptions()
	opts.Readout = "$750"
	opts.Caption = "75.0% of <limit>"

	var b strings.Builder
	if err := WriteSVG(&b, h.dial, opts); err != nil {
		t.Fatal(err)
	}
	svg := b.String()

	track := DescribeArc(100, 100, 86, -120, 120).String()
	fill := DescribeArc(100, 100, 86, -120, 60).String()
	for _, want := range []string{track, fill, "<circle", "$750", "75.0% of &lt;limit&gt;", "<title>Groceries</title>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q\n%s", want, svg)
		}
	}
}

func TestWriteSVGFixedHasNoHandle(t *testing.T) {
	h := newHarness(t, model.KindCreditScore, 700, 0)
	var b strings.Builder
	if err := WriteSVG(&b, h.dial, DefaultSVGOptions()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "<circle") {
		t.Error("fixed-scale dial exported a drag handle")
	}
}

func TestWriteSVGRejectsBadSize(t *testing.T) {
	h := newHarness(t, model.KindSavings, 10, 100)
	if err := WriteSVG(&strings.Builder{}, h.dial, SVGOptions{}); err == nil {
		t.Error("zero size accepted")
	}
}
