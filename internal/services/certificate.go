package services

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"linkedin-reviewer/internal/models"
)

const (
	DefaultCertificateName = "LinkedIn Professional"
	CertificateDateLayout  = "02 January 2006"
	CertificateFilename    = "linkedin_profile_certificate.pdf"

	maxCharsPerLine = 85
	maxNameRunes    = 120
	fontFamily      = "gofont"
	qrPixelSize     = 420
	mm              = 72.0 / 25.4
)

type CertificateService interface {
	Prepare(req models.CertificateRequest) Certificate
	Render(w io.Writer, req models.CertificateRequest) error
	RenderToFile(path string, req models.CertificateRequest) error
	RenderToBytes(req models.CertificateRequest) ([]byte, error)
}

// Certificate is a request with every default resolved and every derived
// string computed; rendering only places these values on the page.
type Certificate struct {
	Name        string
	Score       int
	Date        string
	Issuer      string
	CreditsText string
	Rank        models.RankTier
	BadgeLabel  string
	RankCaption string
	Sentence    string
	Lines       []string
	QRPayload   string
}

type certificateService struct {
	now    func() time.Time
	logger *zap.Logger
}

func NewCertificateService(logger *zap.Logger) CertificateService {
	return NewCertificateServiceWithClock(time.Now, logger)
}

func NewCertificateServiceWithClock(now func() time.Time, logger *zap.Logger) CertificateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &certificateService{now: now, logger: logger}
}

// ComputeRankPercentile maps a score to its tier. Bands are checked from the
// top down and the first match wins.
func ComputeRankPercentile(score int) models.RankTier {
	switch {
	case score >= 95:
		return models.RankTier{Label: "S (Elite)", Percentile: 99}
	case score >= 90:
		return models.RankTier{Label: "A+ (Exceptional)", Percentile: 95}
	case score >= 80:
		return models.RankTier{Label: "A (Excellent)", Percentile: 88}
	case score >= 70:
		return models.RankTier{Label: "B (Strong)", Percentile: 74}
	case score >= 60:
		return models.RankTier{Label: "C (Average)", Percentile: 63}
	default:
		return models.RankTier{Label: "D (Needs Improvement)", Percentile: 35}
	}
}

// WrapText greedily packs words into lines. A word joins the current line
// while the line length plus one space plus the word stays within maxChars.
func WrapText(text string, maxChars int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= maxChars {
			if line != "" {
				line += " " + word
			} else {
				line = word
			}
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// QRPayload is what the certificate's QR code encodes. The fallback string is
// a display convenience only; it is not signed.
func QRPayload(name string, score int, rank, date, verificationURL string) string {
	if verificationURL != "" {
		return verificationURL
	}
	return fmt.Sprintf("cert|name:%s|score:%d|rank:%s|date:%s", name, score, rank, date)
}

func (s *certificateService) Prepare(req models.CertificateRequest) Certificate {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultCertificateName
	}
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimSpace(string(runes[:maxNameRunes]))
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.now().Format(CertificateDateLayout)
	}

	rank := ComputeRankPercentile(req.Score)
	sentence := fmt.Sprintf(
		"has achieved a LinkedIn Profile Performance Score of %d using our AI-powered LinkedIn Profile Reviewer on %s. "+
			"Based on the evaluated parameters of content clarity, headline structure, achievement representation, "+
			"and relevant industry keywords, the candidate secures an estimated %s standing, placing them in the top %d%% "+
			"of professional LinkedIn profiles in our evaluation. This certificate reflects an analytical review of the "+
			"provided information and serves as a benchmark report for future optimization and professional positioning.",
		req.Score, date, rank.Label, rank.Percentile,
	)

	return Certificate{
		Name:        name,
		Score:       req.Score,
		Date:        date,
		Issuer:      req.Issuer,
		CreditsText: req.CreditsText,
		Rank:        rank,
		BadgeLabel:  strconv.Itoa(req.Score) + " / 100",
		RankCaption: fmt.Sprintf("Rank: %s • Approx. top %d%% profiles", rank.Label, rank.Percentile),
		Sentence:    sentence,
		Lines:       WrapText(sentence, maxCharsPerLine),
		QRPayload:   QRPayload(name, req.Score, rank.Label, date, req.VerificationURL),
	}
}

func (s *certificateService) RenderToBytes(req models.CertificateRequest) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *certificateService) RenderToFile(path string, req models.CertificateRequest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create certificate file: %w", err)
	}
	if err := s.Render(f, req); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close certificate file: %w", err)
	}
	return nil
}

// Render draws the certificate as a single landscape A4 page.
func (s *certificateService) Render(w io.Writer, req models.CertificateRequest) error {
	if req.Score < 0 || req.Score > 100 {
		return fmt.Errorf("score must be between 0 and 100, got %d", req.Score)
	}

	cert := s.Prepare(req)
	qrPNG, err := EncodeQRPNG(cert.QRPayload, qrPixelSize)
	if err != nil {
		return err
	}

	stamp := s.now()
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("LinkedIn Profile Performance Certificate", true)
	pdf.SetProducer("LinkedIn AI Reviewer", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", goitalic.TTF)
	pdf.AddPage()

	p := &page{pdf: pdf}
	p.w, p.h = pdf.GetPageSize()

	p.border()
	p.heading(cert.Name)
	p.badge(cert.BadgeLabel, cert.RankCaption)
	p.paragraph(cert.Lines)
	p.qr(qrPNG)
	p.signature(cert.Issuer, cert.Date)
	p.credits(cert.CreditsText)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render certificate: %w", err)
	}

	s.logger.Info("certificate rendered",
		zap.Int("score", cert.Score),
		zap.String("rank", cert.Rank.Label),
	)
	return nil
}

// page positions are in points measured from the top-left corner.
type page struct {
	pdf  *fpdf.Fpdf
	w, h float64
}

const (
	titleTop     = 30 * mm
	subtitleTop  = 40 * mm
	nameTop      = 56 * mm
	textLeft     = 30 * mm
	textTop      = 70 * mm
	textLeading  = 12 * 1.2
	qrSize       = 60 * mm
	qrTop        = 110 * mm
	signatureTop = 180 * mm
	creditsTop   = 198 * mm
)

func (p *page) border() {
	margin := 20 * mm
	inset := 12.0

	p.stroke("#3310a7")
	p.pdf.SetLineWidth(3)
	p.pdf.RoundedRect(margin/2, margin/2, p.w-margin, p.h-margin, 12*mm, "1234", "D")

	p.stroke("#13419d")
	p.pdf.SetLineWidth(1)
	p.pdf.RoundedRect(margin/2+inset, margin/2+inset, p.w-margin-2*inset, p.h-margin-2*inset, 8*mm, "1234", "D")
}

func (p *page) heading(name string) {
	p.centered(fontFamily, "B", 30, "#000000", p.w/2, titleTop, "LinkedIn Profile Performance")
	p.centered(fontFamily, "", 16, "#4b5563", p.w/2, subtitleTop, "This is to certify that")
	p.centered(fontFamily, "B", 26, "#111827", p.w/2, nameTop, name)
}

func (p *page) badge(label, caption string) {
	badgeW, badgeH := 70*mm, 28*mm
	x := p.w - 25*mm - badgeW
	y := nameTop + 6*mm

	p.fill("#22b470")
	p.stroke("#afe2a9")
	p.pdf.SetLineWidth(1)
	p.pdf.RoundedRect(x, y, badgeW, badgeH, 6*mm, "1234", "FD")

	p.centered(fontFamily, "B", 18, "#ffffff", x+badgeW/2, y+14*mm, label)
	p.centered(fontFamily, "", 9, "#ecfdf5", x+badgeW/2, y+23*mm, caption)
}

func (p *page) paragraph(lines []string) {
	p.pdf.SetFont(fontFamily, "", 12)
	p.text("#374151")
	for i, line := range lines {
		p.pdf.Text(textLeft, textTop+float64(i)*textLeading, line)
	}
}

func (p *page) qr(png []byte) {
	x := p.w - 30*mm - qrSize
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	p.pdf.ImageOptions("qr", x, qrTop, qrSize, qrSize, false, opts, 0, "")

	p.centered(fontFamily, "I", 9, "#34495e", x+qrSize/2, qrTop+qrSize+6*mm, "Scan to verify this certificate")
}

func (p *page) signature(issuer, date string) {
	x := textLeft + 20*mm

	p.stroke("#7f8c8d")
	p.pdf.SetLineWidth(1)
	p.pdf.Line(x, signatureTop, x+70*mm, signatureTop)

	p.pdf.SetFont(fontFamily, "", 11)
	p.text("#2c3e50")
	p.pdf.Text(x, signatureTop+8*mm, "Authorized Signatory")

	p.pdf.SetFont(fontFamily, "", 10)
	p.text("#7f8c8d")
	p.pdf.Text(x, signatureTop+15*mm, "Issuer: "+issuer)
	p.pdf.Text(x+80*mm, signatureTop+15*mm, "Date: "+date)
}

func (p *page) credits(text string) {
	p.centered(fontFamily, "", 7, "#26b2bc", p.w/2, creditsTop, text)
}

func (p *page) centered(family, style string, size float64, color string, cx, y float64, s string) {
	p.pdf.SetFont(family, style, size)
	p.text(color)
	p.pdf.Text(cx-p.pdf.GetStringWidth(s)/2, y, s)
}

func (p *page) stroke(hex string) {
	r, g, b := hexRGB(hex)
	p.pdf.SetDrawColor(r, g, b)
}

func (p *page) fill(hex string) {
	r, g, b := hexRGB(hex)
	p.pdf.SetFillColor(r, g, b)
}

func (p *page) text(hex string) {
	r, g, b := hexRGB(hex)
	p.pdf.SetTextColor(r, g, b)
}

func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
