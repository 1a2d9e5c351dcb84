package budget

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type SummaryRenderer interface {
	RenderSummary(summary Summary) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderSummary writes one row per category and a closing SUM row.
func (t *CsvSummaryRendererImpl) RenderSummary(summary Summary) (string, error) {
	data := make([][]string, 0, len(summary.Categories)+2)
	data = append(data, []string{summary.Month.Label(), "Total", string(summary.Period), "Limit", "Progress", "Exceeded"})
	for _, c := range summary.Categories {
		data = append(data, []string{
			string(c.Category),
			amountToString(c.Total),
			amountToString(c.Adjusted),
			amountToString(summary.Limit),
			ratioToString(c.Ratio),
			strconv.FormatBool(c.Exceeded),
		})
	}
	data = append(data, []string{
		"SUM",
		amountToString(summary.Total),
		amountToString(summary.Adjusted),
		amountToString(summary.Limit),
		ratioToString(summary.Ratio),
		strconv.FormatBool(summary.Exceeded),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func amountToString(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func ratioToString(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}
