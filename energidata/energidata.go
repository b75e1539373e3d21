package energidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/askov/ladepris-go/convert"
	"github.com/askov/ladepris-go/hours"
	"github.com/askov/ladepris-go/types"
)

const defaultBaseURL = "https://api.energidataservice.dk"

// DataShapeError reports a record set whose cardinality the pipeline
// cannot interpret. The day-ahead source publishes full days only, so
// anything but 24 or 48 hourly records means broken data.
type DataShapeError struct {
	Count int
}

func (e DataShapeError) Error() string {
	return fmt.Sprintf("spot price response has %d records, expected 24 or 48", e.Count)
}

type elspotResponse struct {
	Records []elspotRecord `json:"records"`
}

type elspotRecord struct {
	HourDK       string  `json:"HourDK"`
	SpotPriceDKK float64 `json:"SpotPriceDKK"`
}

// EnergiData fetches day-ahead spot prices from the Energi Data
// Service Elspotprices dataset for a single price area.
type EnergiData struct {
	area    string
	baseURL string
}

func New(area string) EnergiData {
	return EnergiData{area: area, baseURL: defaultBaseURL}
}

// NewWithBaseURL is used by tests to point the fetcher at a stub server.
func NewWithBaseURL(area, baseURL string) EnergiData {
	return EnergiData{area: area, baseURL: baseURL}
}

// GetSpotPrices fetches the raw hourly prices for the window from
// today 00:00 up to and including tomorrow's last published hour. The
// source returns newest first; the result is ascending by day then
// hour and holds exactly 24 or 48 points.
func (e EnergiData) GetSpotPrices(ctx context.Context, today, tomorrow string) ([]types.SpotPrice, error) {
	u := fmt.Sprintf(`%s/dataset/Elspotprices?start=%sT00:00&end=%sT23:59&filter=%s`,
		e.baseURL,
		today,
		tomorrow,
		url.QueryEscape(fmt.Sprintf(`{"PriceArea":["%s"]}`, e.area)))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spot prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var decoded elspotResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make([]types.SpotPrice, 0, len(decoded.Records))
	for _, rec := range decoded.Records {
		hour, err := hours.FromLocalIso(rec.HourDK)
		if err != nil {
			return nil, fmt.Errorf("failed to parse record hour: %w", err)
		}
		prices = append(prices, types.SpotPrice{
			Hour:  hour,
			Price: convert.MWhToKWh(rec.SpotPriceDKK),
		})
	}

	// The dataset is served newest hour first.
	slices.SortFunc(prices, func(a, b types.SpotPrice) int {
		return a.Hour.Compare(b.Hour)
	})

	if len(prices) != 24 && len(prices) != 48 {
		return nil, DataShapeError{Count: len(prices)}
	}

	return prices, nil
}
