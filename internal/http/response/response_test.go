package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-9")

	Error(c, CodeConflict, "Cannot delete product because it exists in past orders.")

	if w.Code != http.StatusOK {
		t.Fatalf("business errors should use http 200, got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.StatusCode != CodeConflict || body.Data["request_id"] != "req-9" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestErrorWithoutRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, CodeBadRequest, "Quantity must be positive")

	if w.Body.String() != `{"status_code":400,"msg":"Quantity must be positive","data":null}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSuccessWithPageIncludesPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, []string{"Gel Pen"}, NewPagination(1, 20, 1))

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.Pagination == nil || body.Pagination.TotalPage != 1 {
		t.Fatalf("pagination missing: %s", w.Body.String())
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPage != 3 {
		t.Fatalf("total page want 3 got %d", p.TotalPage)
	}
	if NewPagination(1, 0, 5).TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages")
	}
}

func TestAttachmentHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "sales_report_2024-03-10.pdf", "application/pdf", []byte("%PDF-1.3"))

	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="sales_report_2024-03-10.pdf"` {
		t.Fatalf("unexpected disposition: %s", got)
	}
	if w.Body.String() != "%PDF-1.3" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
