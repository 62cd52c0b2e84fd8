package check

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"domaincheck/internal/check/metrics"
	"domaincheck/internal/check/mocks"
	dErrors "domaincheck/pkg/domain-errors"
	"domaincheck/pkg/platform/httputil"
	"domaincheck/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/lookuper-mocks.go -package=mocks Lookuper
type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	lookuper *mocks.MockLookuper
	metrics  *metrics.Metrics
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.lookuper = mocks.NewMockLookuper(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.lookuper, WithMetrics(s.metrics))
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestCheck_Available() {
	body := "No match for \"THISISARANDOMDOMAINTHATPROBABLYDOESNOTEXIST12345.COM\".\r\n"
	s.lookuper.EXPECT().
		Lookup(gomock.Any(), "thisisarandomdomainthatprobablydoesnotexist12345.com").
		Return(body, nil)

	verdict, err := s.service.Check(s.ctx, "thisisarandomdomainthatprobablydoesnotexist12345.com")
	s.Require().NoError(err)
	s.True(verdict.Available)
	s.Equal("thisisarandomdomainthatprobablydoesnotexist12345.com", verdict.Domain)
	s.Equal(body, verdict.WhoisData)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CheckOutcome.WithLabelValues("available")))
}

func (s *ServiceSuite) TestCheck_Registered() {
	s.lookuper.EXPECT().Lookup(gomock.Any(), "example.com").Return(registeredResponse, nil)

	verdict, err := s.service.Check(s.ctx, "example.com")
	s.Require().NoError(err)
	s.False(verdict.Available)
	s.Equal(registeredResponse, verdict.WhoisData)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CheckOutcome.WithLabelValues("unavailable")))
}

func (s *ServiceSuite) TestCheck_SurroundingWhitespaceIsInvalid() {
	s.lookuper.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	for _, domain := range []string{" example.com ", "example.com\n", "\texample.com", "   "} {
		verdict, err := s.service.Check(s.ctx, domain)
		s.Nil(verdict, "%q", domain)
		s.Require().ErrorIs(err, ErrInvalidDomain, "%q", domain)

		status, msg := httputil.StatusAndMessage(err)
		s.Equal(http.StatusBadRequest, status)
		s.Equal("Invalid domain format", msg)
	}
}

func (s *ServiceSuite) TestCheck_MissingDomain() {
	s.lookuper.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	verdict, err := s.service.Check(s.ctx, "")
	s.Nil(verdict)
	s.Require().ErrorIs(err, ErrMissingDomain)
	s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CheckOutcome.WithLabelValues(metrics.OutcomeInvalid)))
}

func (s *ServiceSuite) TestCheck_InvalidDomainIssuesNoLookup() {
	s.lookuper.EXPECT().Lookup(gomock.Any(), gomock.Any()).Times(0)

	for _, domain := range []string{"invalid-domain", "a.com", "-abc.com", "sub.example.com", "abc.c"} {
		verdict, err := s.service.Check(s.ctx, domain)
		s.Nil(verdict, domain)
		s.Require().ErrorIs(err, ErrInvalidDomain, domain)

		status, msg := httputil.StatusAndMessage(err)
		s.Equal(http.StatusBadRequest, status)
		s.Equal("Invalid domain format", msg)
	}
}

func (s *ServiceSuite) TestCheck_LookupFailure() {
	cause := errors.New("dial tcp whois.verisign-grs.com:43: i/o timeout")
	s.lookuper.EXPECT().Lookup(gomock.Any(), "example.com").Return("", cause)

	verdict, err := s.service.Check(s.ctx, "example.com")
	s.Nil(verdict)
	s.Require().Error(err)
	s.ErrorIs(err, cause)
	s.Equal(dErrors.CodeLookupFailed, dErrors.CodeOf(err))
	status, msg := httputil.StatusAndMessage(err)
	s.Equal(http.StatusInternalServerError, status)
	s.Equal("Error checking domain availability", msg)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CheckOutcome.WithLabelValues(metrics.OutcomeLookupError)))
	s.Equal(1, testutil.CollectAndCount(s.metrics.LookupLatency))
}

func (s *ServiceSuite) TestCheck_EmptyResponseIsLookupFailure() {
	s.lookuper.EXPECT().Lookup(gomock.Any(), "example.com").Return("", sentinel.ErrEmptyResponse)

	_, err := s.service.Check(s.ctx, "example.com")
	s.ErrorIs(err, sentinel.ErrEmptyResponse)
	s.Equal(dErrors.CodeLookupFailed, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestCheck_PassesContext() {
	type ctxKey struct{}
	ctx := context.WithValue(s.ctx, ctxKey{}, "marker")
	s.lookuper.EXPECT().
		Lookup(gomock.Any(), "example.com").
		DoAndReturn(func(got context.Context, _ string) (string, error) {
			s.Equal("marker", got.Value(ctxKey{}))
			return registeredResponse, nil
		})

	_, err := s.service.Check(ctx, "example.com")
	s.Require().NoError(err)
}

func TestCheck_NilMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookuper := mocks.NewMockLookuper(ctrl)
	lookuper.EXPECT().Lookup(gomock.Any(), "example.com").Return("Domain not found.", nil)

	verdict, err := New(lookuper).Check(context.Background(), "example.com")
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}
