package models

type CertificateRequest struct {
	Name            string
	Score           int
	Issuer          string
	CreditsText     string
	Date            string
	VerificationURL string
}

type RankTier struct {
	Label      string `json:"label"`
	Percentile int    `json:"percentile"`
}

// CertificateQuery is bound from the certificate endpoint's query string.
type CertificateQuery struct {
	Score *int   `query:"score" validate:"required,min=0,max=100"`
	Name  string `query:"name"`
}
