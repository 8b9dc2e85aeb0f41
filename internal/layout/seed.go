package layout

import (
	"math"

	"github.com/jonathan/resume-fitter/internal/types"
)

// seedTier maps content volume to a starting body size. A document lands in the
// first tier whose character or bullet threshold it exceeds.
type seedTier struct {
	minCharacters int
	minBullets    int
	bodyFontSize  float64
}

var seedTiers = []seedTier{
	{minCharacters: 5000, minBullets: 25, bodyFontSize: 7},
	{minCharacters: 4000, minBullets: 20, bodyFontSize: 8},
	{minCharacters: 3000, minBullets: 15, bodyFontSize: 9},
	{minCharacters: 2000, minBullets: 10, bodyFontSize: 10},
}

const (
	// denseWorkEntries caps the seed size for documents with many positions
	denseWorkEntries   = 5
	denseBodyFontSize  = 8
	seedHeaderOffset   = 2
	seedLineHeight     = 1.15
	seedSectionSpacing = 8
	seedMinSection     = 3
	seedBulletSpacing  = 1
	seedMinBullet      = 0.5
)

// SeedFromMetrics returns a non-iterative sizing estimate from content volume alone.
// It is cheap enough for live previews but does not guarantee the page is filled.
func SeedFromMetrics(doc *types.Document) (types.SizingConfig, error) {
	return NewFitter().Seed(doc)
}

// Seed is SeedFromMetrics for the fitter's page. The estimate does not depend on the page.
func (f *Fitter) Seed(doc *types.Document) (types.SizingConfig, error) {
	if err := checkDocument(doc); err != nil {
		return types.SizingConfig{}, err
	}
	return seedConfig(ComputeMetrics(doc)), nil
}

func seedConfig(m types.ContentMetrics) types.SizingConfig {
	body := float64(BaseFontSize)
	for _, tier := range seedTiers {
		if m.TotalCharacters > tier.minCharacters || m.BulletCount > tier.minBullets {
			body = tier.bodyFontSize
			break
		}
	}
	if m.WorkExperienceCount > denseWorkEntries {
		body = math.Min(body, denseBodyFontSize)
	}
	body = math.Max(MinFontSize, math.Min(MaxBodyFontSize, body))

	scale := body / BaseFontSize
	return roundConfig(types.SizingConfig{
		HeaderFontSize: math.Min(body+seedHeaderOffset, MaxHeaderSize),
		BodyFontSize:   body,
		BulletFontSize: body - bulletFontOffset,
		LineHeight:     body * seedLineHeight,
		SectionSpacing: math.Max(seedMinSection, math.Floor(seedSectionSpacing*scale)),
		BulletSpacing:  math.Max(seedMinBullet, seedBulletSpacing*scale),
	}, math.Round)
}
