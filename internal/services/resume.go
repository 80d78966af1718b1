package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"seekers/internal/domain"
	"seekers/internal/skills"
)

const rawPreviewLen = 500

var (
	resumeEmailRegexp = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	resumePhoneRegexp = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`)
	yearRangeRegexp   = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|[Pp]resent|[Nn]ow)`)

	sectionHeaders = map[string]string{
		"summary":             "summary",
		"about":               "summary",
		"about me":            "summary",
		"profile":             "summary",
		"professional summary": "summary",
		"skills":              "skills",
		"technical skills":    "skills",
		"experience":          "experience",
		"work experience":     "experience",
		"professional experience": "experience",
		"employment history":  "experience",
		"education":           "education",
		"academic background": "education",
	}
)

type resumeService struct {
	extractor domain.PDFExtractor
	logger    *slog.Logger
}

// NewResumeService creates a ResumeService over the given PDF text extractor.
func NewResumeService(extractor domain.PDFExtractor, logger *slog.Logger) domain.ResumeService {
	return &resumeService{extractor: extractor, logger: logger}
}

func (s *resumeService) Parse(ctx context.Context, filename string, size int64, r io.ReaderAt) (*domain.ParsedResume, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return nil, domain.ErrResumeNotPDF
	}
	if size > domain.MaxResumeSize {
		return nil, domain.ErrResumeTooLarge
	}
	text, err := s.extractor.ExtractText(r, size)
	if err != nil {
		s.logger.Warn("failed to extract resume text", "filename", filename, "error", err)
		return nil, domain.ErrResumeUnreadable
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrResumeUnreadable
	}
	return s.mapText(text), nil
}

// mapText maps extracted resume text to profile fields with line-oriented
// heuristics: contact details come from patterns anywhere in the text, the
// rest from recognized section headers.
func (s *resumeService) mapText(text string) *domain.ParsedResume {
	lines := splitLines(text)
	sections := splitSections(lines)

	parsed := &domain.ParsedResume{
		Email:          resumeEmailRegexp.FindString(text),
		Phone:          strings.TrimSpace(resumePhoneRegexp.FindString(text)),
		Summary:        strings.Join(sections["summary"], " "),
		Skills:         parseSkills(sections["skills"]),
		Experience:     parseExperience(sections["experience"]),
		Education:      parseEducation(sections["education"]),
		RawTextPreview: preview(text),
	}

	// The header block before the first section usually carries the name on
	// the first line and the current title right after it.
	header := sections[""]
	for _, line := range header {
		if resumeEmailRegexp.MatchString(line) || resumePhoneRegexp.MatchString(line) {
			continue
		}
		if parsed.FullName == "" {
			parsed.FullName = line
			continue
		}
		if parsed.Title == "" {
			parsed.Title = line
			break
		}
	}
	return parsed
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitSections groups lines under their most recent section header. Lines
// before any header land under the "" key.
func splitSections(lines []string) map[string][]string {
	sections := make(map[string][]string)
	current := ""
	for _, line := range lines {
		key := strings.ToLower(strings.TrimRight(line, ":"))
		if section, ok := sectionHeaders[key]; ok {
			current = section
			continue
		}
		sections[current] = append(sections[current], line)
	}
	return sections
}

func parseSkills(lines []string) []domain.Skill {
	var parsed []domain.Skill
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, name := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '|' || r == ';' || r == '•'
		}) {
			name = strings.TrimSpace(name)
			if name == "" || len(name) > 40 || seen[strings.ToLower(name)] {
				continue
			}
			seen[strings.ToLower(name)] = true
			parsed = append(parsed, domain.Skill{Name: name, Category: skills.Classify(name)})
		}
	}
	return parsed
}

// parseExperience treats each line carrying a year range as the start of a
// new entry; the non-bullet line before it is the role/company, and bullet
// lines under it are description points.
func parseExperience(lines []string) []domain.Experience {
	var entries []domain.Experience
	var current *domain.Experience
	var pending string
	for _, line := range lines {
		if m := yearRangeRegexp.FindStringSubmatch(line); m != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &domain.Experience{
				ID:        uuid.NewString(),
				StartDate: m[1],
				EndDate:   m[2],
				Current:   strings.EqualFold(m[2], "present") || strings.EqualFold(m[2], "now"),
			}
			if pending != "" {
				current.Title, current.Company = splitTitleCompany(pending)
				pending = ""
			}
			if rest := strings.TrimSpace(yearRangeRegexp.ReplaceAllString(line, "")); rest != "" && current.Title == "" {
				current.Title, current.Company = splitTitleCompany(rest)
			}
			continue
		}
		if current != nil && isBulletLine(line) {
			current.Description = append(current.Description, strings.TrimLeft(line, "•*-– "))
			continue
		}
		pending = line
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "– ") || strings.HasPrefix(line, "* ")
}

func splitTitleCompany(line string) (title, company string) {
	for _, sep := range []string{" at ", " @ ", " - ", " – ", ", "} {
		if i := strings.Index(line, sep); i > 0 {
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

func parseEducation(lines []string) []domain.Education {
	var entries []domain.Education
	var current *domain.Education
	for _, line := range lines {
		if m := yearRangeRegexp.FindStringSubmatch(line); m != nil {
			if current == nil {
				current = &domain.Education{ID: uuid.NewString()}
			}
			current.StartYear = m[1]
			if !strings.EqualFold(m[2], "present") && !strings.EqualFold(m[2], "now") {
				current.EndYear = m[2]
			}
			if rest := strings.TrimSpace(yearRangeRegexp.ReplaceAllString(line, "")); rest != "" && current.School == "" {
				current.School = rest
			}
			entries = append(entries, *current)
			current = nil
			continue
		}
		if current == nil {
			current = &domain.Education{ID: uuid.NewString(), School: line}
			continue
		}
		if current.Degree == "" {
			current.Degree = line
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > rawPreviewLen {
		return text[:rawPreviewLen]
	}
	return text
}
