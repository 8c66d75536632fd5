package seeder

import (
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
)

var starterHard = []string{
	"python", "sql", "machine learning", "deep learning", "nlp", "pandas", "numpy",
	"scikit-learn", "tensorflow", "pytorch", "statistics", "data visualization",
	"tableau", "power bi", "excel", "r", "spark", "hadoop", "airflow", "docker",
	"kubernetes", "aws", "gcp", "azure", "go", "java", "javascript", "typescript",
	"react", "node.js", "postgresql", "mysql", "mongodb", "redis", "git", "linux",
	"rest api", "ci/cd", "terraform", "c++", "c#", ".net",
}

var starterSoft = []string{
	"communication", "teamwork", "leadership", "problem solving", "critical thinking",
	"time management", "adaptability", "collaboration", "mentoring", "stakeholder management",
}

var starterSynonyms = []skill.SynonymRow{
	{Token: "ml", ExpandsTo: "machine learning", Category: "skill"},
	{Token: "dl", ExpandsTo: "deep learning", Category: "skill"},
	{Token: "natural language processing", ExpandsTo: "nlp", Category: "skill"},
	{Token: "sklearn", ExpandsTo: "scikit-learn", Category: "library"},
	{Token: "tf", ExpandsTo: "tensorflow", Category: "library"},
	{Token: "torch", ExpandsTo: "pytorch", Category: "library"},
	{Token: "k8s", ExpandsTo: "kubernetes", Category: "tool"},
	{Token: "golang", ExpandsTo: "go", Category: "language"},
	{Token: "js", ExpandsTo: "javascript", Category: "language"},
	{Token: "ts", ExpandsTo: "typescript", Category: "language"},
	{Token: "nodejs", ExpandsTo: "node.js", Category: "framework"},
	{Token: "postgres", ExpandsTo: "postgresql", Category: "database"},
	{Token: "amazon web services", ExpandsTo: "aws", Category: "cloud"},
	{Token: "google cloud", ExpandsTo: "gcp", Category: "cloud"},
	{Token: "powerbi", ExpandsTo: "power bi", Category: "tool"},
	{Token: "ms excel", ExpandsTo: "excel", Category: "tool"},
	{Token: "python", Category: "language"},
	{Token: "sql", Category: "language"},
}

func weight(v float64) *float64 { return &v }

var starterRoles = []StarterRole{
	{
		Name: "Data Scientist",
		JDText: "We are looking for a Data Scientist with strong Python and SQL skills, hands-on " +
			"machine learning experience and familiarity with NLP. Experience with pandas, " +
			"scikit-learn and data visualization is a plus. Good communication and teamwork required",
		Keywords: []matching.KeywordRow{
			{Keyword: "python", Importance: matching.ImportanceCritical},
			{Keyword: "sql", Importance: matching.ImportanceCritical},
			{Keyword: "machine learning", Importance: matching.ImportanceCritical},
			{Keyword: "nlp", Importance: matching.ImportancePreferred},
			{Keyword: "pandas", Importance: matching.ImportancePreferred},
			{Keyword: "scikit-learn", Importance: matching.ImportancePreferred},
			{Keyword: "data visualization", Importance: matching.ImportanceOptional},
			{Keyword: "communication", Weight: weight(0.5)},
		},
	},
	{
		Name: "Backend Engineer",
		JDText: "Backend Engineer building Go services on PostgreSQL and Redis, shipped with " +
			"Docker and Kubernetes through CI/CD. Experience designing REST APIs on AWS and " +
			"mentoring junior engineers",
	},
}
