package fetch

import (
	"net/url"
	"strings"
)

// Board is a job board whose pages have a known layout.
type Board string

const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardUnknown    Board = "unknown"
)

type boardLayout struct {
	hosts   []string
	content []string
	noise   []string
}

var boardLayouts = map[Board]boardLayout{
	BoardGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	BoardLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".posting-description", ".section-wrapper.page-full-width", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	BoardWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	BoardAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='descriptionText']", "main"},
		noise:   []string{"[class*='applicationForm']"},
	},
}

// noise present on every board
var commonNoiseSelectors = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectBoard identifies the job board from a URL's host.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for board, layout := range boardLayouts {
		for _, h := range layout.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return board
			}
		}
	}
	return BoardUnknown
}

// ContentSelectors returns the selectors tried, in order, to find the posting body.
// Board-specific selectors come first, then the generic ones.
func (b Board) ContentSelectors() []string {
	layout, ok := boardLayouts[b]
	if !ok {
		return JobPostingSelectors()
	}
	out := make([]string, 0, len(layout.content)+len(JobPostingSelectors()))
	out = append(out, layout.content...)
	return append(out, JobPostingSelectors()...)
}

// NoiseSelectors returns the selectors removed before extracting text.
func (b Board) NoiseSelectors() []string {
	out := append([]string(nil), commonNoiseSelectors...)
	if layout, ok := boardLayouts[b]; ok {
		out = append(out, layout.noise...)
	}
	return out
}
