package model

// CanonicalHeaders 主表的标准列，顺序即主表列序
var CanonicalHeaders = []string{
	"first_name", "last_name", "full_name", "email", "phone_numbers",
	"linkedin_url", "account_linkedin", "headline", "title", "designation",
	"about", "skills", "contact_city", "contact_state", "contact_country",
	"organization_name", "organization_name_url", "company_name_for_emails",
	"website", "organization_linkedin_url", "facebook_url", "twitter_url",
	"industries", "technologies", "keywords", "employees", "headquarters_location",
	"organization_street_address", "organization_city", "organization_state",
	"organization_country", "organization_postal_code", "company_phone",
	"job_time_period", "founded_year", "description", "full_description",
	"account_owner", "cb_rank_company", "estimated_revenue_range",
}

// 来源追溯列，始终追加在标准列之后
const (
	ColSourceFile  = "source_file"
	ColSourceSheet = "source_sheet"
)

var canonicalIndex = func() map[string]int {
	idx := make(map[string]int, len(CanonicalHeaders))
	for i, h := range CanonicalHeaders {
		idx[h] = i
	}
	return idx
}()

// MasterColumns 主表全部列：标准列 + 来源列
func MasterColumns() []string {
	columns := make([]string, 0, len(CanonicalHeaders)+2)
	columns = append(columns, CanonicalHeaders...)
	columns = append(columns, ColSourceFile, ColSourceSheet)
	return columns
}

// CanonicalIndex 标准列下标，非标准列返回 -1
func CanonicalIndex(name string) int {
	if i, ok := canonicalIndex[name]; ok {
		return i
	}
	return -1
}

// IsCanonical 是否为标准列
func IsCanonical(name string) bool {
	_, ok := canonicalIndex[name]
	return ok
}
