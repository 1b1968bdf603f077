package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/questionnaire"
)

// SubmissionTimeFormat is the timestamp shown in table column headers and
// report footers.
const SubmissionTimeFormat = "02/01/2006 15:04"

var ErrScopeDenied = errors.New("not visible in current scope")

type HistogramBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type QuestionHistogram struct {
	QuestionID string            `json:"questionId"`
	Label      string            `json:"label"`
	Buckets    []HistogramBucket `json:"buckets"`
}

type DashboardStats struct {
	TotalResponses           int                 `json:"totalResponses"`
	Workers                  int                 `json:"workers"`
	Departments              int                 `json:"departments"`
	SatisfactionScore        int                 `json:"satisfactionScore"`
	SatisfactionDistribution []HistogramBucket   `json:"satisfactionDistribution"`
	Histograms               []QuestionHistogram `json:"histograms"`
}

type TableCell struct {
	Value string `json:"value"`
	Image bool   `json:"image,omitempty"`
}

// TableRow is either a section title row (SectionTitle set, no cells) or a
// question row with one cell per column.
type TableRow struct {
	SectionTitle string      `json:"sectionTitle,omitempty"`
	QuestionID   string      `json:"questionId,omitempty"`
	Label        string      `json:"label,omitempty"`
	Changed      bool        `json:"changed,omitempty"`
	Cells        []TableCell `json:"cells,omitempty"`
}

type ComparisonTable struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

type GroupSummary struct {
	Name           string    `json:"name"`
	Responses      int       `json:"responses"`
	LastSubmission time.Time `json:"lastSubmission"`
}

// QuestionComparison holds one series per department, aligned with Values:
// Series[dept][i] counts answers equal to Values[i].
type QuestionComparison struct {
	QuestionID string           `json:"questionId"`
	Label      string           `json:"label"`
	Values     []string         `json:"values"`
	Series     map[string][]int `json:"series"`
}

type DepartmentComparison struct {
	Departments []string             `json:"departments"`
	Questions   []QuestionComparison `json:"questions"`
}

// Filter narrows a visible response set by company, site or submission
// interval. The zero value matches everything.
type Filter struct {
	CompanyID string
	SiteID    string
	From      time.Time
	To        time.Time
}

func (f Filter) match(r models.Response) bool {
	if f.CompanyID != "" && r.CompanyID != f.CompanyID {
		return false
	}
	if f.SiteID != "" && r.SiteID != f.SiteID {
		return false
	}
	if !f.From.IsZero() && r.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.CreatedAt.After(f.To) {
		return false
	}
	return true
}

type AnalysisService struct {
	scope     *ScopeService
	companies CompanyStore
	sites     SiteStore
}

func NewAnalysisService(scope *ScopeService, companies CompanyStore, sites SiteStore) *AnalysisService {
	return &AnalysisService{scope: scope, companies: companies, sites: sites}
}

func (s *AnalysisService) visible(ctx context.Context, user *models.UserProfile, f Filter) ([]models.Response, error) {
	responses, err := s.scope.VisibleResponses(ctx, user)
	if err != nil {
		return nil, err
	}
	out := responses[:0]
	for _, r := range responses {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Workers lists the distinct workers found in the visible responses, sorted
// by name.
func (s *AnalysisService) Workers(ctx context.Context, user *models.UserProfile, f Filter) ([]GroupSummary, error) {
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	return summarize(responses, models.Response.Worker), nil
}

func (s *AnalysisService) Departments(ctx context.Context, user *models.UserProfile, f Filter) ([]GroupSummary, error) {
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	return summarize(responses, models.Response.Department), nil
}

// WorkerTable builds the full-history table for one worker: one column per
// submission in chronological order, every checklist question as a row.
func (s *AnalysisService) WorkerTable(ctx context.Context, user *models.UserProfile, name string, f Filter) (*ComparisonTable, error) {
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	var mine []models.Response
	for _, r := range responses {
		if r.Worker() == name {
			mine = append(mine, r)
		}
	}
	if len(mine) == 0 {
		return nil, ErrScopeDenied
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.Before(mine[j].CreatedAt) })

	columns := make([]string, len(mine))
	for i, r := range mine {
		if r.CreatedAt.IsZero() {
			columns[i] = "N/D"
			continue
		}
		columns[i] = r.CreatedAt.Format(SubmissionTimeFormat)
	}
	return &ComparisonTable{
		Title:   name,
		Columns: columns,
		Rows:    buildRows(mine, false),
	}, nil
}

// DepartmentTable compares the workers of one department: one column per
// distinct worker, each filled from that worker's latest response.
func (s *AnalysisService) DepartmentTable(ctx context.Context, user *models.UserProfile, name string, f Filter) (*ComparisonTable, error) {
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	var dept []models.Response
	for _, r := range responses {
		// Department names are typed by hand; match loosely.
		if strings.EqualFold(strings.TrimSpace(r.Department()), strings.TrimSpace(name)) {
			dept = append(dept, r)
		}
	}
	if len(dept) == 0 {
		return nil, ErrScopeDenied
	}
	return groupTable(name, dept), nil
}

func (s *AnalysisService) SiteTable(ctx context.Context, user *models.UserProfile, siteID string, f Filter) (*ComparisonTable, error) {
	sites, err := s.scope.VisibleSites(ctx, user)
	if err != nil {
		return nil, err
	}
	var site *models.CompanySite
	for i := range sites {
		if sites[i].ID == siteID {
			site = &sites[i]
			break
		}
	}
	if site == nil {
		return nil, ErrScopeDenied
	}
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	var filtered []models.Response
	for _, r := range responses {
		if r.SiteID == siteID {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrScopeDenied
	}
	return groupTable(site.Name, filtered), nil
}

func (s *AnalysisService) CompanyTable(ctx context.Context, user *models.UserProfile, companyID string, f Filter) (*ComparisonTable, error) {
	companies, err := s.scope.VisibleCompanies(ctx, user)
	if err != nil {
		return nil, err
	}
	var company *models.Company
	for i := range companies {
		if companies[i].ID == companyID {
			company = &companies[i]
			break
		}
	}
	if company == nil {
		return nil, ErrScopeDenied
	}
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	var filtered []models.Response
	for _, r := range responses {
		if r.CompanyID == companyID {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrScopeDenied
	}
	return groupTable(company.Name, filtered), nil
}

// CompareDepartments builds per-department answer distributions for every
// closed question. The value axis is the question's predefined options plus
// any other answer actually observed, so the departments share one scale.
func (s *AnalysisService) CompareDepartments(ctx context.Context, user *models.UserProfile, f Filter) (*DepartmentComparison, error) {
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	byDept := make(map[string][]models.Response)
	for _, r := range responses {
		dept := r.Department()
		if dept == "" {
			continue
		}
		byDept[dept] = append(byDept[dept], r)
	}
	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)

	cmp := &DepartmentComparison{Departments: depts}
	for _, q := range questionnaire.Questions() {
		if q.Type == questionnaire.TypeText || q.Type == questionnaire.TypeTextarea {
			continue
		}
		perDept := make(map[string]map[string]int, len(depts))
		values := append([]string(nil), q.Options...)
		known := make(map[string]bool, len(values))
		for _, v := range values {
			known[v] = true
		}
		for _, d := range depts {
			counts := make(map[string]int)
			for _, b := range BuildHistogram(byDept[d], q.ID) {
				counts[b.Value] = b.Count
				if !known[b.Value] {
					known[b.Value] = true
					values = append(values, b.Value)
				}
			}
			perDept[d] = counts
		}

		qc := QuestionComparison{
			QuestionID: q.ID,
			Label:      q.Label,
			Values:     values,
			Series:     make(map[string][]int, len(depts)),
		}
		for _, d := range depts {
			series := make([]int, len(values))
			for i, v := range values {
				series[i] = perDept[d][v]
			}
			qc.Series[d] = series
		}
		cmp.Questions = append(cmp.Questions, qc)
	}
	return cmp, nil
}

// Dashboard aggregates the visible responses into the landing page stats.
func (s *AnalysisService) Dashboard(ctx context.Context, user *models.UserProfile, f Filter) (*DashboardStats, error) {
	responses, err := s.visible(ctx, user, f)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{
		TotalResponses: len(responses),
		Workers:        len(summarize(responses, models.Response.Worker)),
		Departments:    len(summarize(responses, models.Response.Department)),
	}
	stats.SatisfactionScore, stats.SatisfactionDistribution = SatisfactionStats(responses)
	for _, q := range questionnaire.Questions() {
		if q.Type == questionnaire.TypeText || q.Type == questionnaire.TypeTextarea {
			continue
		}
		buckets := BuildHistogram(responses, q.ID)
		if len(buckets) == 0 {
			continue
		}
		stats.Histograms = append(stats.Histograms, QuestionHistogram{
			QuestionID: q.ID,
			Label:      q.Label,
			Buckets:    buckets,
		})
	}
	return stats, nil
}

// BuildHistogram counts the rendered answers for one question. Multi-select
// answers contribute one count per selected option; blank answers are
// skipped. Buckets come out ordered by count, then value.
func BuildHistogram(responses []models.Response, questionID string) []HistogramBucket {
	counts := make(map[string]int)
	for _, r := range responses {
		v := r.Answer(questionID)
		switch x := v.(type) {
		case []string:
			for _, e := range x {
				if e = strings.TrimSpace(e); e != "" {
					counts[e]++
				}
			}
		case []any:
			for _, e := range x {
				if s := strings.TrimSpace(questionnaire.RenderAnswer(e)); s != questionnaire.Dash {
					counts[s]++
				}
			}
		default:
			if s := questionnaire.RenderAnswer(v); s != questionnaire.Dash {
				counts[s]++
			}
		}
	}
	return sortBuckets(counts)
}

// SatisfactionStats scores each response as the mean of its legacy rating
// answers, then averages the per-response scores into a 0-100 value. The
// distribution counts the primary rating answer of every response, each one
// falling back to the software question when it carries no rating.
func SatisfactionStats(responses []models.Response) (int, []HistogramBucket) {
	var sum float64
	var scored int
	counts := make(map[string]int)
	for _, r := range responses {
		var total, n int
		for _, id := range questionnaire.SatisfactionQuestionIDs {
			s, ok := r.Answer(id).(string)
			if !ok {
				continue
			}
			if score, known := questionnaire.Score(s); known {
				total += score
				n++
			}
		}
		if n > 0 {
			sum += float64(total) / float64(n)
			scored++
		}

		v := questionnaire.RenderAnswer(r.Answer(questionnaire.SatisfactionDistributionID))
		if v == questionnaire.Dash {
			v = questionnaire.RenderAnswer(r.Answer(questionnaire.SatisfactionDistributionFallback))
		}
		if v != questionnaire.Dash {
			counts[v]++
		}
	}
	score := 0
	if scored > 0 {
		score = int(math.Round(sum / float64(scored)))
	}
	return score, sortBuckets(counts)
}

// groupTable renders responses as one column per distinct worker, using each
// worker's latest response. Rows where every cell is blank are dropped.
func groupTable(title string, responses []models.Response) *ComparisonTable {
	latest := make(map[string]models.Response)
	for _, r := range responses {
		name := r.Worker()
		if name == "" {
			continue
		}
		if prev, ok := latest[name]; !ok || r.CreatedAt.After(prev.CreatedAt) {
			latest[name] = r
		}
	}
	names := make([]string, 0, len(latest))
	for n := range latest {
		names = append(names, n)
	}
	sort.Strings(names)

	ordered := make([]models.Response, len(names))
	for i, n := range names {
		ordered[i] = latest[n]
	}
	return &ComparisonTable{
		Title:   title,
		Columns: names,
		Rows:    buildRows(ordered, true),
	}
}

// buildRows produces one row per checklist question, in order, with section
// title rows at each boundary. When skipBlank is set, rows whose every cell
// renders blank are omitted (and so are section rows left without content).
func buildRows(columns []models.Response, skipBlank bool) []TableRow {
	var rows []TableRow
	pendingSection := ""
	for _, q := range questionnaire.Questions() {
		if title, ok := questionnaire.SectionTitle(q.ID); ok {
			pendingSection = title
		}
		cells := make([]TableCell, len(columns))
		allBlank := true
		distinct := make(map[string]bool)
		for i, r := range columns {
			v := questionnaire.RenderAnswer(r.Answer(q.ID))
			cells[i] = TableCell{
				Value: v,
				Image: q.ID == questionnaire.PhotoQuestionID && strings.HasPrefix(v, "data:image"),
			}
			if v != questionnaire.Dash {
				allBlank = false
			}
			distinct[v] = true
		}
		if skipBlank && allBlank {
			continue
		}
		if pendingSection != "" {
			rows = append(rows, TableRow{SectionTitle: pendingSection})
			pendingSection = ""
		}
		rows = append(rows, TableRow{
			QuestionID: q.ID,
			Label:      q.Label,
			Changed:    len(distinct) > 1 && !questionnaire.FreeText(q.ID),
			Cells:      cells,
		})
	}
	return rows
}

func summarize(responses []models.Response, key func(models.Response) string) []GroupSummary {
	byName := make(map[string]*GroupSummary)
	for _, r := range responses {
		name := key(r)
		if name == "" {
			continue
		}
		g, ok := byName[name]
		if !ok {
			g = &GroupSummary{Name: name}
			byName[name] = g
		}
		g.Responses++
		if r.CreatedAt.After(g.LastSubmission) {
			g.LastSubmission = r.CreatedAt
		}
	}
	out := make([]GroupSummary, 0, len(byName))
	for _, g := range byName {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortBuckets(counts map[string]int) []HistogramBucket {
	out := make([]HistogramBucket, 0, len(counts))
	for v, c := range counts {
		out = append(out, HistogramBucket{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
