package kyc

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veridoc/internal/audit"
	"veridoc/internal/decision"
)

type stubEngine struct {
	text  string
	err   error
	calls int
}

func (e *stubEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	e.calls++
	return e.text, e.err
}

type stubPDF struct {
	text string
	err  error
}

func (p *stubPDF) Text(path string) (string, error) {
	return p.text, p.err
}

// ServiceSuite drives the pipeline with stubbed OCR and PDF collaborators and
// real images written to a temp dir.
type ServiceSuite struct {
	suite.Suite

	dir       string
	sharpPath string
	flatPath  string
	store     *audit.MemoryStore
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.sharpPath = filepath.Join(s.dir, "sharp.png")
	s.flatPath = filepath.Join(s.dir, "flat.png")
	s.writePNG(s.sharpPath, true)
	s.writePNG(s.flatPath, false)
	s.store = audit.NewMemoryStore()
}

// writePNG renders either a checkerboard (sharp) or a uniform gray (blurry)
// test card.
func (s *ServiceSuite) writePNG(path string, sharp bool) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(128)
			if sharp && (x+y)%2 == 0 {
				v = 255
			} else if sharp {
				v = 0
			}
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	f, err := os.Create(path)
	s.Require().NoError(err)
	defer f.Close()
	s.Require().NoError(png.Encode(f, img))
}

func (s *ServiceSuite) service(engine *stubEngine, pdf *stubPDF) *Service {
	return New(engine, pdf, audit.NewPublisher(s.store), nil, nil, decision.Config{})
}

func (s *ServiceSuite) idText() string {
	return "CARTE DE IDENTITATE\nSERIA AB NR 123456\nCNP 1900101123457\nVALABIL 01.01.2030\n"
}

func (s *ServiceSuite) invoiceText() string {
	issued := time.Now().UTC().Format("02.01.2006")
	return "Factura nr. FAC 1001\nData: " + issued + "\nTotal: 120,50\n"
}

func (s *ServiceSuite) TestValidVerification() {
	engine := &stubEngine{text: s.idText()}
	svc := s.service(engine, &stubPDF{text: s.invoiceText()})

	report, err := svc.Verify(context.Background(), Request{
		IDImagePath:    s.sharpPath,
		InvoicePDFPath: filepath.Join(s.dir, "invoice.pdf"),
	})

	s.Require().NoError(err)
	s.Equal(decision.StatusValid, report.Result.Status)
	s.Empty(report.Result.Failures)
	s.Equal(1, engine.calls)
	s.Equal(64, report.ImageWidth)
	s.Greater(report.Sharpness, decision.DefaultSharpnessThreshold)

	events := s.store.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.EventKYCVerdict, events[0].Name)
	s.Equal("KYC_VALID", events[0].Status)
	s.ElementsMatch([]string{"cnp", "series", "number", "expiry"}, events[0].IdentityFields)
	s.ElementsMatch([]string{"number", "issue_date", "total"}, events[0].InvoiceFields)
	s.NotEmpty(events[0].ID)
}

func (s *ServiceSuite) TestBlurryImageFailsRuleOne() {
	svc := s.service(&stubEngine{text: s.idText()}, &stubPDF{text: s.invoiceText()})

	report, err := svc.Verify(context.Background(), Request{
		IDImagePath:    s.flatPath,
		InvoicePDFPath: "invoice.pdf",
	})

	s.Require().NoError(err)
	s.Equal(decision.StatusInvalid, report.Result.Status)
	s.Equal([]decision.FailureReason{decision.FailureImageBlurry}, report.Result.Failures)
}

func (s *ServiceSuite) TestSharpnessOverride() {
	svc := s.service(&stubEngine{text: s.idText()}, &stubPDF{text: s.invoiceText()})

	threshold := -1.0
	report, err := svc.Verify(context.Background(), Request{
		IDImagePath:    s.flatPath,
		InvoicePDFPath: "invoice.pdf",
		Overrides:      Overrides{SharpnessThreshold: &threshold},
	})

	s.Require().NoError(err)
	s.Equal(decision.StatusValid, report.Result.Status)
}

func (s *ServiceSuite) TestUnreadablePDFYieldsMissingFields() {
	svc := s.service(&stubEngine{text: s.idText()}, &stubPDF{err: errors.New("broken xref")})

	report, err := svc.Verify(context.Background(), Request{
		IDImagePath:    s.sharpPath,
		InvoicePDFPath: "invoice.pdf",
	})

	s.Require().NoError(err)
	s.Equal(decision.StatusInvalid, report.Result.Status)
	s.Contains(report.Result.Failures, decision.FailureMissingInvoiceFields)
	s.Contains(report.Result.Failures, decision.FailureInvoiceTooOld)
	s.Contains(report.Result.Failures, decision.FailureNonPositiveTotal)
}

func (s *ServiceSuite) TestOCRFailureIsAnError() {
	svc := s.service(&stubEngine{err: errors.New("engine not found")}, &stubPDF{text: s.invoiceText()})

	_, err := svc.Verify(context.Background(), Request{
		IDImagePath:    s.sharpPath,
		InvoicePDFPath: "invoice.pdf",
	})

	s.Require().ErrorIs(err, ErrOCRFailed)
	s.Empty(s.store.Events())
}

func (s *ServiceSuite) TestMissingImageIsAnError() {
	svc := s.service(&stubEngine{text: s.idText()}, &stubPDF{text: s.invoiceText()})

	_, err := svc.Verify(context.Background(), Request{
		IDImagePath:    filepath.Join(s.dir, "absent.png"),
		InvoicePDFPath: "invoice.pdf",
	})

	s.Require().ErrorIs(err, ErrImageUnreadable)
}
