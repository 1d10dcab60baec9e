package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"julee/internal/validation/handler/mocks"
	"julee/internal/validation/models"
	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
)

type ValidationHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
	now     time.Time
}

func TestValidationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ValidationHandlerSuite))
}

func (s *ValidationHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.T().Cleanup(ctrl.Finish)
	s.service = mocks.NewMockService(ctrl)
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), 5*time.Second)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *ValidationHandlerSuite) passedRecord() *models.DocumentPolicyValidation {
	record, err := models.NewDocumentPolicyValidation(id.NewValidationID(), "doc-1", "pol-1", s.now)
	s.Require().NoError(err)
	s.Require().NoError(record.Start(s.now))
	s.Require().NoError(record.CompleteInitialValidation(models.ScoreSet{{QueryID: "q-1", Score: 90}}, s.now))
	s.Require().NoError(record.Finalize(true, s.now))
	return record
}

func (s *ValidationHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ValidationHandlerSuite) TestStartValidation() {
	s.Run("creates and returns terminal record", func() {
		record := s.passedRecord()
		s.service.EXPECT().
			StartValidation(gomock.Any(), id.DocumentID("doc-1"), id.PolicyID("pol-1")).
			Return(record, nil)

		w := s.do(http.MethodPost, "/validations", StartValidationRequest{DocumentID: "doc-1", PolicyID: "pol-1"})

		s.Equal(http.StatusCreated, w.Code)
		var resp ValidationResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(record.ValidationID.String(), resp.ValidationID)
		s.Equal("PASSED", resp.Status)
		s.Require().NotNil(resp.Passed)
		s.True(*resp.Passed)
		s.Require().Len(resp.ValidationScores, 1)
		s.Equal(id.QueryID("q-1"), resp.ValidationScores[0].QueryID)
		s.Equal(90, resp.ValidationScores[0].Score)
	})

	s.Run("blank document id is rejected before the service", func() {
		w := s.do(http.MethodPost, "/validations", StartValidationRequest{DocumentID: "   ", PolicyID: "pol-1"})

		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "document id cannot be empty")
	})

	s.Run("malformed body is rejected", func() {
		req := httptest.NewRequest(http.MethodPost, "/validations", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown policy maps to 404", func() {
		s.service.EXPECT().
			StartValidation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "policy pol-x not found"))

		w := s.do(http.MethodPost, "/validations", StartValidationRequest{DocumentID: "doc-1", PolicyID: "pol-x"})

		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ValidationHandlerSuite) TestRun() {
	s.Run("resumes a record", func() {
		record := s.passedRecord()
		s.service.EXPECT().Run(gomock.Any(), record.ValidationID).Return(record, nil)

		w := s.do(http.MethodPost, "/validations/"+record.ValidationID.String()+"/run", nil)

		s.Equal(http.StatusOK, w.Code)
		var resp ValidationResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("PASSED", resp.Status)
	})

	s.Run("concurrent run maps to 409", func() {
		validationID := id.NewValidationID()
		s.service.EXPECT().Run(gomock.Any(), validationID).
			Return(nil, dErrors.New(dErrors.CodeConflict, "validation is already being processed"))

		w := s.do(http.MethodPost, "/validations/"+validationID.String()+"/run", nil)

		s.Equal(http.StatusConflict, w.Code)
		s.Contains(w.Body.String(), "conflict")
	})

	s.Run("malformed id is rejected", func() {
		w := s.do(http.MethodPost, "/validations/not-a-uuid/run", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ValidationHandlerSuite) TestGetValidation() {
	s.Run("returns record", func() {
		record := s.passedRecord()
		s.service.EXPECT().GetValidation(gomock.Any(), record.ValidationID).Return(record, nil)

		w := s.do(http.MethodGet, "/validations/"+record.ValidationID.String(), nil)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("unknown id maps to 404", func() {
		validationID := id.NewValidationID()
		s.service.EXPECT().GetValidation(gomock.Any(), validationID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "validation not found"))

		w := s.do(http.MethodGet, "/validations/"+validationID.String(), nil)

		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ValidationHandlerSuite) TestListByDocument() {
	record := s.passedRecord()
	s.service.EXPECT().
		ListByDocument(gomock.Any(), id.DocumentID("doc-1")).
		Return([]*models.DocumentPolicyValidation{record}, nil)

	w := s.do(http.MethodGet, "/documents/doc-1/validations", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp ValidationListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Count)
	s.Equal(record.ValidationID.String(), resp.Validations[0].ValidationID)
}

func (s *ValidationHandlerSuite) TestListValidations() {
	s.service.EXPECT().ListValidations(gomock.Any()).Return(nil, nil)

	w := s.do(http.MethodGet, "/validations", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp ValidationListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(0, resp.Count)
}
