package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-gia/types"
)

// ImpactAnalyzer is satisfied by *analysis.Analyzer.
type ImpactAnalyzer interface {
	Analyze(ctx context.Context, event, location string) types.AnalysisResult
}

// Analyze validates the request before any upstream call is made; every
// accepted request gets a 200 with a complete result.
func Analyze(analyzer ImpactAnalyzer, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		request, err := bindAnalyzeRequest(c)
		if err != nil {
			status := errorStatus(err)
			if status == http.StatusBadRequest {
				log.WithError(err).Debug("rejected analyze request")
			} else {
				log.WithError(err).Error("analyze request failed")
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		result := analyzer.Analyze(c.Request.Context(), request.Event, request.Location)
		c.JSON(http.StatusOK, result)
	}
}

func errorStatus(err error) int {
	if types.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func bindAnalyzeRequest(c *gin.Context) (types.AnalyzeRequest, error) {
	var request types.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		return request, types.ErrMalformedBody
	}

	request.Event = strings.TrimSpace(request.Event)
	if request.Event == "" {
		return request, types.ErrEventRequired
	}

	request.Location = strings.TrimSpace(request.Location)
	if request.Location == "" {
		request.Location = types.DefaultLocation
	}
	return request, nil
}
