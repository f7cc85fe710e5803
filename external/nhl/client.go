package nhl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/MattRWallace/NHLPredictor/internal/domain/rawdata"
	"github.com/MattRWallace/NHLPredictor/internal/platform/logging"
	"github.com/MattRWallace/NHLPredictor/internal/platform/resilience"
	"github.com/MattRWallace/NHLPredictor/internal/usecase"
)

const (
	defaultBaseURL  = "https://api-web.nhle.com/v1"
	payloadSource   = "nhl-api-web"
	maxResponseSize = 6 << 20
)

var errNHLTransient = crerr.New("nhl api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the NHL web API. It retries transient failures with a
// linear backoff, deduplicates concurrent identical requests, and trips a
// circuit breaker after consecutive transient errors.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.FlightGroup
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ClubScheduleSeason fetches one team's full-season schedule.
func (c *Client) ClubScheduleSeason(ctx context.Context, teamAbbrev, season string) ([]usecase.ExternalScheduleGame, []rawdata.Payload, error) {
	teamAbbrev = strings.ToUpper(strings.TrimSpace(teamAbbrev))
	season = strings.TrimSpace(season)
	if teamAbbrev == "" || season == "" {
		return nil, nil, fmt.Errorf("%w: team abbrev and season are required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/club-schedule-season/%s/%s", url.PathEscape(teamAbbrev), url.PathEscape(season))
	var envelope scheduleEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch schedule team=%s season=%s: %w", teamAbbrev, season, err)
	}

	games := make([]usecase.ExternalScheduleGame, 0, len(envelope.Games))
	for _, item := range envelope.Games {
		if item.ID <= 0 {
			continue
		}
		games = append(games, mapScheduleGame(item, season))
	}

	payload := buildPayload(path, "schedule", teamAbbrev+"/"+season, raw)
	payload.Season = season
	payload.TeamAbbrev = teamAbbrev
	return games, []rawdata.Payload{payload}, nil
}

// GameBoxScore fetches one game's box score. A box score without per-player
// stats is not an error: RosterPublished is false and the rosters are empty.
func (c *Client) GameBoxScore(ctx context.Context, gameID int64) (usecase.ExternalBoxScore, []rawdata.Payload, error) {
	if gameID <= 0 {
		return usecase.ExternalBoxScore{}, nil, fmt.Errorf("%w: game id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/gamecenter/%d/boxscore", gameID)
	var envelope boxScoreEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return usecase.ExternalBoxScore{}, nil, fmt.Errorf("fetch box score game_id=%d: %w", gameID, err)
	}

	out := usecase.ExternalBoxScore{
		GameID:          envelope.ID,
		HomeTeamID:      envelope.HomeTeam.ID,
		AwayTeamID:      envelope.AwayTeam.ID,
		RosterPublished: envelope.PlayerByGameStats != nil,
	}
	if out.GameID == 0 {
		out.GameID = gameID
	}
	if stats := envelope.PlayerByGameStats; stats != nil {
		out.HomeSkaters = mapSkaterLines(stats.HomeTeam.Forwards, stats.HomeTeam.Defense)
		out.HomeGoalies = mapGoalieLines(stats.HomeTeam.Goalies)
		out.AwaySkaters = mapSkaterLines(stats.AwayTeam.Forwards, stats.AwayTeam.Defense)
		out.AwayGoalies = mapGoalieLines(stats.AwayTeam.Goalies)
	}

	payload := buildPayload(path, "boxscore", strconv.FormatInt(gameID, 10), raw)
	payload.GameID = gameID
	return out, []rawdata.Payload{payload}, nil
}

// PlayerLanding fetches one player's profile and career totals.
func (c *Client) PlayerLanding(ctx context.Context, playerID int64) (usecase.ExternalPlayerProfile, []rawdata.Payload, error) {
	if playerID <= 0 {
		return usecase.ExternalPlayerProfile{}, nil, fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/player/%d/landing", playerID)
	var envelope playerLandingEnvelope
	raw, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return usecase.ExternalPlayerProfile{}, nil, fmt.Errorf("fetch player landing player_id=%d: %w", playerID, err)
	}

	out := usecase.ExternalPlayerProfile{
		PlayerID:      envelope.PlayerID,
		IsActive:      envelope.IsActive,
		FirstName:     envelope.FirstName.Default,
		LastName:      envelope.LastName.Default,
		CurrentTeamID: envelope.CurrentTeamID,
		HeightCm:      envelope.HeightInCentimeters,
		WeightKg:      envelope.WeightInKilograms,
	}
	if out.PlayerID == 0 {
		out.PlayerID = playerID
	}

	payload := buildPayload(path, "player", strconv.FormatInt(playerID, 10), raw)
	payload.PlayerID = playerID
	return out, []rawdata.Payload{payload}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhl circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	raw, _, err := c.flight.Fetch(path, func() ([]byte, error) {
		payload, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return payload, reqErr
	})
	if err != nil {
		return nil, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNHLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errNHLTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errNHLTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "nhl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isTransient(err error) bool {
	return err != nil && stderrors.Is(err, errNHLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func buildPayload(path, entityType, entityKey string, raw []byte) rawdata.Payload {
	now := time.Now().UTC()
	hash := sha256.Sum256(raw)
	return rawdata.Payload{
		Source:      payloadSource,
		EntityType:  entityType,
		EntityKey:   entityKey + "@" + path,
		PayloadJSON: string(raw),
		PayloadHash: hex.EncodeToString(hash[:]),
		FetchedAt:   &now,
	}
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
