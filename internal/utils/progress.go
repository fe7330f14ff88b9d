package utils

import (
	"io"

	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescHashing = "Hashing"
)

// NewProgressBar creates a consistently styled progress bar.
//
// A negative total switches the bar to spinner mode. Known totals show
// the count and iterations per second.
func NewProgressBar(total int, description string, opts ...progressbar.Option) *progressbar.ProgressBar {
	base := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		base = append(base,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		base = append(base,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, append(base, opts...)...)
}

// Ensure BarProgress implements domain.Progress
var _ domain.Progress = (*BarProgress)(nil)

// BarProgress reports digest progress on a terminal progress bar.
// The bar is created lazily once the number of artifacts is known.
type BarProgress struct {
	description string
	output      io.Writer
	bar         *progressbar.ProgressBar
}

// NewBarProgress creates a BarProgress writing to output (stderr when nil)
func NewBarProgress(description string, output io.Writer) *BarProgress {
	return &BarProgress{
		description: description,
		output:      output,
	}
}

// Start creates the underlying bar
func (p *BarProgress) Start(total int) {
	var opts []progressbar.Option
	if p.output != nil {
		opts = append(opts, progressbar.OptionSetWriter(p.output))
	}
	p.bar = NewProgressBar(total, p.description, opts...)
}

// Advance moves the bar by one artifact
func (p *BarProgress) Advance() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish completes the bar
func (p *BarProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
