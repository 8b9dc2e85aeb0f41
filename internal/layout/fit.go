package layout

import (
	"math"

	"github.com/jonathan/resume-fitter/internal/types"
)

// Font size bounds in px
const (
	MinFontSize     = 8  // smallest readable body size
	MaxBodyFontSize = 16 // body size for very sparse documents
	MaxHeaderSize   = 22
	BaseFontSize    = 11
)

// Search parameters
const (
	// DefaultFillFraction leaves headroom under the usable height for estimation error
	DefaultFillFraction    = 0.88
	MaxSearchIterations    = 30
	MaxEmergencyIterations = 10

	heightTolerance   = 30  // px from target considered converged
	intervalThreshold = 0.1 // stop once [lo, hi] is narrower than this
	emergencyStep     = 0.5
)

// Ratios used to derive the dependent fields from a body font size
const (
	searchHeaderOffset      = 3
	searchLineHeightRatio   = 1.25
	searchSectionRatio      = 1.2
	searchMinSection        = 6
	searchBulletRatio       = 0.2
	searchMinBulletSpacing  = 1
	emergencyHeaderOffset   = 2
	emergencyLineHeight     = 1.1
	emergencyMinSection     = 3
	emergencyMinBulletSpace = 0.5
	bulletFontOffset        = 0.5
)

// Observer receives every candidate the fitter evaluates
type Observer func(types.FitIteration)

// Option configures a Fitter
type Option func(*Fitter)

// WithGeometry fits against the given page instead of A4
func WithGeometry(page PageGeometry) Option {
	return func(f *Fitter) {
		f.estimator = NewEstimator(page)
	}
}

// WithFillFraction sets the share of the usable height to aim for.
// Values outside (0, 1] are ignored.
func WithFillFraction(fraction float64) Option {
	return func(f *Fitter) {
		if fraction > 0 && fraction <= 1 {
			f.fillFraction = fraction
		}
	}
}

// WithObserver installs a callback invoked for every estimator call
func WithObserver(observer Observer) Option {
	return func(f *Fitter) {
		f.observer = observer
	}
}

// Fitter searches for the sizing configuration that best fills a page.
// It holds no per-call state and may be shared between goroutines as long as
// the observer is safe for concurrent use.
type Fitter struct {
	estimator    *Estimator
	fillFraction float64
	observer     Observer
}

// NewFitter creates a Fitter for A4 with the default fill fraction
func NewFitter(opts ...Option) *Fitter {
	f := &Fitter{
		estimator:    NewEstimator(A4),
		fillFraction: DefaultFillFraction,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Page returns the geometry the fitter targets
func (f *Fitter) Page() PageGeometry {
	return f.estimator.Page
}

// Fit returns the sizing configuration that best fills an A4 page with doc.
func Fit(doc *types.Document) (types.SizingConfig, error) {
	result, err := NewFitter().Fit(doc)
	if err != nil {
		return types.SizingConfig{}, err
	}
	return result.Config, nil
}

// candidate is one evaluated configuration
type candidate struct {
	config types.SizingConfig
	height float64
}

// bestSeen is the running best over the evaluated candidates
type bestSeen struct {
	candidate
	set  bool
	fits bool
	diff float64
}

// fold returns the better of b and c. Fitting candidates beat overflowing ones;
// among fitting ones the closest to target wins with ties going to c; when nothing
// fits the smallest height wins.
func (b bestSeen) fold(c candidate, usable, target float64) bestSeen {
	next := bestSeen{candidate: c, set: true, fits: c.height <= usable, diff: math.Abs(c.height - target)}
	switch {
	case !b.set:
		return next
	case next.fits && !b.fits:
		return next
	case !next.fits && b.fits:
		return b
	case next.fits:
		if next.diff <= b.diff {
			return next
		}
		return b
	default:
		if next.height <= b.height {
			return next
		}
		return b
	}
}

// Fit runs the binary search over body font size followed, if needed, by the
// emergency reduction pass, and returns the rounded configuration.
func (f *Fitter) Fit(doc *types.Document) (*types.FitResult, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	usable := f.estimator.Page.UsableHeight()
	target := usable * f.fillFraction

	cfg := deriveSearchConfig(BaseFontSize)
	height := f.evaluate(doc, cfg, types.PhaseInitial, 0)
	best := bestSeen{}.fold(candidate{cfg, height}, usable, target)

	lo, hi := float64(MinFontSize), float64(MaxBodyFontSize)
	iterations := 0
	for iterations < MaxSearchIterations && math.Abs(height-target) > heightTolerance {
		iterations++

		body := cfg.BodyFontSize
		if height > target {
			hi = body
			body = (lo + body) / 2
		} else {
			lo = body
			body = (body + hi) / 2
		}

		cfg = deriveSearchConfig(body)
		height = f.evaluate(doc, cfg, types.PhaseSearch, iterations)
		best = best.fold(candidate{cfg, height}, usable, target)

		if hi-lo < intervalThreshold {
			break
		}
	}

	final := best.candidate
	emergency := 0
	for final.height > usable && final.config.BodyFontSize > MinFontSize && emergency < MaxEmergencyIterations {
		emergency++
		next := deriveEmergencyConfig(final.config)
		final = candidate{next, f.evaluate(doc, next, types.PhaseEmergency, emergency)}
	}

	rounded := roundConfig(final.config, math.Round)
	roundedHeight := f.estimator.EstimateHeight(doc, rounded)
	if roundedHeight > usable && final.height <= usable {
		// Rounding down every field can only shrink the estimate.
		rounded = roundConfig(final.config, math.Floor)
		roundedHeight = f.estimator.EstimateHeight(doc, rounded)
	}

	return &types.FitResult{
		Config:              rounded,
		PredictedHeight:     roundTenth(roundedHeight),
		TargetHeight:        roundTenth(target),
		UsableHeight:        usable,
		FillPercentage:      roundTenth(roundedHeight / usable * 100),
		Iterations:          iterations,
		EmergencyIterations: emergency,
		Overflows:           roundedHeight > usable,
	}, nil
}

// EstimateHeight predicts the height of doc on the fitter's page
func (f *Fitter) EstimateHeight(doc *types.Document, cfg types.SizingConfig) float64 {
	return f.estimator.EstimateHeight(doc, cfg)
}

func (f *Fitter) evaluate(doc *types.Document, cfg types.SizingConfig, phase string, index int) float64 {
	height := f.estimator.EstimateHeight(doc, cfg)
	if f.observer != nil {
		f.observer(types.FitIteration{
			Phase:           phase,
			Index:           index,
			Config:          cfg,
			PredictedHeight: height,
		})
	}
	return height
}

func checkDocument(doc *types.Document) error {
	if doc == nil {
		return &InputError{Message: "document is nil"}
	}
	if err := doc.Validate(); err != nil {
		return &InputError{Message: "document failed validation", Cause: err}
	}
	return nil
}

// deriveSearchConfig builds a full configuration from a body size using the search ratios
func deriveSearchConfig(body float64) types.SizingConfig {
	return types.SizingConfig{
		HeaderFontSize: math.Min(MaxHeaderSize, body+searchHeaderOffset),
		BodyFontSize:   body,
		BulletFontSize: body - bulletFontOffset,
		LineHeight:     body * searchLineHeightRatio,
		SectionSpacing: math.Max(searchMinSection, math.Floor(body*searchSectionRatio)),
		BulletSpacing:  math.Max(searchMinBulletSpacing, math.Floor(body*searchBulletRatio)),
	}
}

// deriveEmergencyConfig shrinks prev by one step with tighter lines and spacing
func deriveEmergencyConfig(prev types.SizingConfig) types.SizingConfig {
	body := math.Max(MinFontSize, prev.BodyFontSize-emergencyStep)
	return types.SizingConfig{
		HeaderFontSize: math.Min(MaxHeaderSize, body+emergencyHeaderOffset),
		BodyFontSize:   body,
		BulletFontSize: body - bulletFontOffset,
		LineHeight:     body * emergencyLineHeight,
		SectionSpacing: math.Max(emergencyMinSection, prev.SectionSpacing-1),
		BulletSpacing:  math.Max(emergencyMinBulletSpace, prev.BulletSpacing-emergencyStep),
	}
}

// roundConfig rounds font sizes and line height to one decimal and spacing to whole px
// using fn (math.Round or math.Floor).
func roundConfig(c types.SizingConfig, fn func(float64) float64) types.SizingConfig {
	body := math.Min(MaxBodyFontSize, math.Max(MinFontSize, fn(c.BodyFontSize*10)/10))
	header := math.Max(body, math.Min(MaxHeaderSize, fn(c.HeaderFontSize*10)/10))
	return types.SizingConfig{
		HeaderFontSize: header,
		BodyFontSize:   body,
		BulletFontSize: roundTenth(body - bulletFontOffset),
		LineHeight:     fn(c.LineHeight*10) / 10,
		SectionSpacing: fn(c.SectionSpacing),
		BulletSpacing:  fn(c.BulletSpacing),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
