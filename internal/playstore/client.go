// Package playstore is the client for the app directory service: app
// metadata, paginated review streams, and name search. The pipeline treats
// every failure here as "no data"; retry policy belongs to the directory
// service, not to this client.
package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lusule/fraud-app-detector/internal/models"
	"github.com/sirupsen/logrus"
)

// reviewPageSize is the maximum number of reviews fetched per request.
const reviewPageSize = 200

// Client talks to the app directory service
type Client struct {
	baseURL string
	client  *resty.Client
}

type appDetailsResponse struct {
	AppID     string   `json:"appId"`
	Title     string   `json:"title"`
	Icon      string   `json:"icon"`
	Developer string   `json:"developer"`
	Genre     string   `json:"genre"`
	Installs  string   `json:"installs"`
	Released  string   `json:"released"`
	Score     *float64 `json:"score"`
}

type reviewRecord struct {
	Content string `json:"content"`
	At      string `json:"at"`
	Score   int    `json:"score"`
}

type reviewsResponse struct {
	Reviews   []reviewRecord `json:"reviews"`
	NextToken string         `json:"nextToken"`
}

type searchResponse struct {
	Results []appDetailsResponse `json:"results"`
}

// NewClient creates a directory client against baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  resty.New().SetTimeout(30 * time.Second),
	}
}

// AppDetails fetches metadata for one app, or nil when the directory does
// not know the app.
func (c *Client) AppDetails(ctx context.Context, appID, country string) (*models.AppMetadata, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("country", country).
		Get(fmt.Sprintf("%s/apps/%s", c.baseURL, appID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app details for %s: %w", appID, err)
	}

	if resp.StatusCode() == 404 {
		return nil, nil
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("directory service returned status %d for %s", resp.StatusCode(), appID)
	}

	var details appDetailsResponse
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return nil, fmt.Errorf("failed to decode app details for %s: %w", appID, err)
	}

	return toMetadata(details), nil
}

// Reviews fetches up to max reviews for an app, newest first, following
// continuation tokens. A short page or a missing token ends the stream;
// fewer results than requested is normal, not an error.
func (c *Client) Reviews(ctx context.Context, appID, country string, max int) ([]models.Review, error) {
	var all []models.Review
	token := ""

	for len(all) < max {
		count := max - len(all)
		if count > reviewPageSize {
			count = reviewPageSize
		}

		req := c.client.R().
			SetContext(ctx).
			SetQueryParam("country", country).
			SetQueryParam("count", fmt.Sprintf("%d", count)).
			SetQueryParam("sort", "newest")
		if token != "" {
			req.SetQueryParam("token", token)
		}

		resp, err := req.Get(fmt.Sprintf("%s/apps/%s/reviews", c.baseURL, appID))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reviews for %s: %w", appID, err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("directory service returned status %d for %s reviews", resp.StatusCode(), appID)
		}

		var page reviewsResponse
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, fmt.Errorf("failed to decode reviews for %s: %w", appID, err)
		}

		for _, record := range page.Reviews {
			all = append(all, models.Review{
				Content:  record.Content,
				PostedAt: record.At,
				Stars:    record.Score,
			})
		}

		if page.NextToken == "" || len(page.Reviews) < count {
			break
		}
		token = page.NextToken
	}

	if len(all) > max {
		all = all[:max]
	}

	logrus.Debugf("Fetched %d reviews for %s", len(all), appID)
	return all, nil
}

// Search looks up apps by name and returns their metadata records.
func (c *Client) Search(ctx context.Context, query, country string) ([]models.AppMetadata, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("country", country).
		Get(fmt.Sprintf("%s/search", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("directory service returned status %d for search", resp.StatusCode())
	}

	var results searchResponse
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	apps := make([]models.AppMetadata, 0, len(results.Results))
	for _, r := range results.Results {
		apps = append(apps, *toMetadata(r))
	}
	return apps, nil
}

func toMetadata(details appDetailsResponse) *models.AppMetadata {
	return &models.AppMetadata{
		AppID:     details.AppID,
		Title:     details.Title,
		Icon:      details.Icon,
		Developer: details.Developer,
		Category:  details.Genre,
		Installs:  details.Installs,
		Released:  details.Released,
		Score:     details.Score,
	}
}
