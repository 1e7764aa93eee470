package mapper

// variantCatalog 每个口径列的已知原始表头变体，仅用于喂给模糊匹配打分，非权威
// 顺序与 model.CanonicalHeaders 一致，变体顺序决定同分时的取舍（先见者优先）
var variantCatalog = map[string][]string{
	"first_name": {
		"first_name", "firstname", "fname", "f_name", "first", "given_name", "forename",
		"name", "candidate_first_name", "customer_first_name", "contact_first_name",
		"employee_first_name", "fn", "person_name", "member_first_name", "client_first_name",
		"lead_first_name", "prospect_first_name", "user_first_name", "given", "christian_name",
	},
	"last_name": {
		"last_name", "lastname", "lname", "l_name", "last", "surname", "family_name",
		"candidate_last_name", "customer_last_name", "contact_last_name", "employee_last_name",
		"ln", "member_last_name", "client_last_name", "lead_last_name", "prospect_last_name",
		"user_last_name", "family", "paternal_name",
	},
	"full_name": {
		"full_name", "fullname", "name", "complete_name", "person_name", "contact_name",
		"candidate_name", "customer_name", "client_name", "employee_name", "member_name",
		"lead_name", "prospect_name", "user_name", "display_name", "preferred_name",
		"legal_name", "person", "individual", "contact",
	},
	"email": {
		"email", "email_address", "e_mail", "e-mail", "mail", "contact_email", "email_id",
		"e_mail_address", "primary_email", "business_email", "work_email", "personal_email",
		"main_email", "email1", "candidate_email", "customer_email", "client_email",
		"lead_email", "prospect_email", "user_email", "electronic_mail", "mail_id",
		"email_addr", "em",
	},
	"phone_numbers": {
		"phone_numbers", "phone", "phone_number", "telephone", "tel", "mobile", "cell",
		"contact_number", "phone_no", "tel_no", "mobile_number", "cell_phone", "cellular",
		"phone1", "primary_phone", "business_phone", "work_phone", "home_phone",
		"telephone_number", "mobile_no", "cell_no",
	},
	"linkedin_url": {
		"linkedin_url", "linkedin", "linkedin_profile", "li_url", "linkedin_link",
		"linkedin_page", "linked_in", "linkedin_profile_url", "li_profile",
		"professional_profile", "linkedin_id", "social_linkedin", "li_link",
	},
	"account_linkedin": {
		"account_linkedin", "linkedin_account", "li_account", "linkedin_username",
		"linkedin_handle", "professional_account", "business_linkedin", "work_linkedin",
	},
	"headline": {
		"headline", "professional_headline", "tagline", "summary_line", "bio_headline",
		"profile_headline", "job_headline", "career_headline", "professional_summary",
		"brief_summary", "one_liner", "profile_tagline", "intro",
	},
	"title": {
		"title", "job_title", "position", "role", "job_position", "current_title",
		"professional_title", "work_title", "employment_title", "position_title",
		"job_role", "current_position", "current_role", "occupation", "post",
	},
	"designation": {
		"designation", "job_designation", "rank", "level", "grade", "position_level",
		"job_level", "seniority", "hierarchy", "job_grade", "position_rank",
	},
	"about": {
		"about", "bio", "biography", "profile_summary", "personal_summary",
		"profile_description", "about_me", "personal_bio", "background", "profile",
		"overview", "introduction", "personal_info",
	},
	"skills": {
		"skills", "skill_set", "competencies", "expertise", "abilities", "capabilities",
		"technical_skills", "professional_skills", "core_skills", "key_skills",
		"specializations", "proficiencies", "talents", "qualifications",
	},
	"contact_city": {
		"contact_city", "city", "location_city", "person_city", "current_city",
		"residence_city", "home_city", "based_in", "town", "locality",
	},
	"contact_state": {
		"contact_state", "state", "location_state", "person_state", "current_state",
		"residence_state", "home_state", "province", "region", "territory",
	},
	"contact_country": {
		"contact_country", "country", "location_country", "person_country",
		"current_country", "residence_country", "home_country", "nation", "nationality",
		"country_code",
	},
	"organization_name": {
		"organization_name", "company", "company_name", "employer", "organization",
		"org_name", "business_name", "firm", "corporation", "enterprise", "workplace",
		"current_company", "current_employer", "business", "org", "corporate_name",
		"entity", "institution",
	},
	"organization_name_url": {
		"organization_name_url", "company_url", "org_url", "organization_url",
		"employer_url", "company_link", "organization_link", "business_url", "corporate_url",
	},
	"company_name_for_emails": {
		"company_name_for_emails", "company_domain", "email_company", "email_domain",
		"organization_domain", "business_domain", "corporate_domain", "work_domain",
	},
	"website": {
		"website", "company_website", "web_site", "url", "domain", "homepage",
		"web_address", "site", "web_url", "company_site", "business_website",
		"organization_website", "web_page", "www",
	},
	"organization_linkedin_url": {
		"organization_linkedin_url", "company_linkedin", "org_linkedin",
		"corporate_linkedin", "organization_linkedin", "company_linkedin_url",
		"employer_linkedin", "workplace_linkedin",
	},
	"facebook_url": {
		"facebook_url", "facebook", "fb_url", "facebook_page", "fb_page",
		"facebook_profile", "facebook_link", "fb_link", "social_facebook",
		"facebook_account",
	},
	"twitter_url": {
		"twitter_url", "twitter", "twitter_handle", "twitter_profile", "twitter_account",
		"twitter_username", "twitter_link", "social_twitter", "x_url", "x_handle",
	},
	"industries": {
		"industries", "industry", "sector", "business_type", "vertical", "market",
		"business_sector", "industry_type", "category", "business_category",
		"market_sector", "industry_vertical",
	},
	"technologies": {
		"technologies", "tech_stack", "technology", "tools", "software", "platforms",
		"technical_tools", "tech_tools", "systems", "applications",
		"programming_languages", "frameworks",
	},
	"keywords": {
		"keywords", "tags", "key_words", "search_terms", "labels", "categories",
		"topics", "subjects", "themes", "descriptors",
	},
	"employees": {
		"employees", "employee_count", "company_size", "staff_count", "workforce",
		"headcount", "team_size", "personnel_count", "staff_size", "number_of_employees",
		"employee_size", "organization_size",
	},
	"headquarters_location": {
		"headquarters_location", "headquarters", "hq_location", "main_office",
		"head_office", "corporate_headquarters", "hq", "primary_location",
		"main_location", "corporate_office", "home_office",
	},
	"organization_street_address": {
		"organization_street_address", "street_address", "address", "office_address",
		"business_address", "company_address", "corporate_address", "work_address",
		"physical_address", "mailing_address", "street", "addr",
	},
	"organization_city": {
		"organization_city", "company_city", "office_city", "org_city", "business_city",
		"corporate_city", "work_city", "headquarters_city",
	},
	"organization_state": {
		"organization_state", "company_state", "office_state", "org_state",
		"business_state", "corporate_state", "work_state", "headquarters_state",
	},
	"organization_country": {
		"organization_country", "company_country", "office_country", "org_country",
		"business_country", "corporate_country", "work_country", "headquarters_country",
	},
	"organization_postal_code": {
		"organization_postal_code", "postal_code", "zip_code", "zipcode", "zip",
		"company_zip", "office_zip", "business_zip", "postcode", "postal",
	},
	"company_phone": {
		"company_phone", "office_phone", "business_phone", "org_phone",
		"corporate_phone", "organization_phone", "headquarters_phone", "main_phone",
	},
	"job_time_period": {
		"job_time_period", "employment_period", "tenure", "work_period", "duration",
		"employment_duration", "job_duration", "time_at_company", "years_of_service",
		"service_period", "work_tenure",
	},
	"founded_year": {
		"founded_year", "founded", "establishment_year", "year_founded", "established",
		"incorporation_year", "startup_year", "creation_year", "launch_year",
		"founding_date", "inception_year",
	},
	"description": {
		"description", "job_description", "role_description", "job_summary",
		"position_summary", "role_summary", "responsibilities", "job_details",
		"work_description", "duties",
	},
	"full_description": {
		"full_description", "detailed_description", "complete_description",
		"comprehensive_description", "long_description", "extended_description",
	},
	"account_owner": {
		"account_owner", "owner", "account_manager", "assigned_to",
		"responsible_person", "contact_owner", "lead_owner", "sales_owner",
		"account_rep", "rep",
	},
	"cb_rank_company": {
		"cb_rank_company", "company_rank", "cb_rank", "crunchbase_rank",
		"startup_rank", "business_rank", "market_rank",
	},
	"estimated_revenue_range": {
		"estimated_revenue_range", "revenue", "revenue_range", "annual_revenue",
		"yearly_revenue", "turnover", "income", "earnings", "revenue_size",
	},
}
