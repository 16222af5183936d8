package server

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reportdomain "github.com/smallbiznis/docbill/internal/report/domain"
)

// @Summary      Year-To-Date Report
// @Description  Summarize invoice revenue, cost, and profit for a year
// @Tags         reports
// @Produce      json
// @Param        year    query  int     false  "Year (defaults to current)"
// @Param        format  query  string  false  "csv for CSV download"
// @Success      200  {object}  reportdomain.ProfitSummary
// @Router       /reports/ytd [get]
func (s *Server) YearToDateReport(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("year", "invalid_year", "year must be an integer"))
			return
		}
		year = parsed
	}

	summary, err := s.reportSvc.YearToDate(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeProfitCSV(c, summary)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

func writeProfitCSV(c *gin.Context, summary reportdomain.ProfitSummary) {
	c.Header("Content-Disposition", `attachment; filename="ytd_profit.csv"`)
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"period_start", "period_end", "invoice_count", "paid_count", "total_billed", "total_cost", "profit"})
	_ = w.Write([]string{
		summary.PeriodStart.Format("2006-01-02"),
		summary.PeriodEnd.Format("2006-01-02"),
		strconv.FormatInt(summary.InvoiceCount, 10),
		strconv.FormatInt(summary.PaidCount, 10),
		summary.TotalBilled.StringFixed(2),
		summary.TotalCost.StringFixed(2),
		summary.Profit.StringFixed(2),
	})
	w.Flush()
}
