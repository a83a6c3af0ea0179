package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"deriverse-trade-lab/internal/analytics"
	"deriverse-trade-lab/internal/annotations"
	"deriverse-trade-lab/internal/domain"
	"deriverse-trade-lab/internal/storage"
)

// apiServer handles the dashboard HTTP API. Every analytics endpoint loads
// the trade set, applies the query filter, and recomputes from scratch;
// there is no cache to invalidate.
type apiServer struct {
	stores      *appStores
	annotations *annotations.Service
	logger      *log.Logger
}

func (s *apiServer) routes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)

	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/daily", s.handleDaily)
	mux.HandleFunc("/api/drawdown", s.handleDrawdown)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/hourly", s.handleHourly)
	mux.HandleFunc("/api/ordertypes", s.handleOrderTypes)
	mux.HandleFunc("/api/symbols", s.handleSymbols)
	mux.HandleFunc("/api/symbols/list", s.handleSymbolList)
	mux.HandleFunc("/api/monthly", s.handleMonthly)
	mux.HandleFunc("/api/risk", s.handleRisk)
	mux.HandleFunc("/api/patterns", s.handlePatterns)
	mux.HandleFunc("/api/fees/breakdown", s.handleFeeBreakdown)
	mux.HandleFunc("/api/fees/cumulative", s.handleCumulativeFees)
	mux.HandleFunc("/api/trades", s.handleTrades)
	mux.HandleFunc("/api/funding", s.handleFunding)
	mux.HandleFunc("/api/annotations/", s.handleAnnotation)
	mux.HandleFunc("/api/annotations", s.handleAnnotationList)
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// filteredTrades loads all trades and applies the request's query filter.
func (s *apiServer) filteredTrades(ctx context.Context, r *http.Request) ([]*domain.Trade, error) {
	filter, err := parseFilter(r)
	if err != nil {
		return nil, err
	}
	trades, err := s.stores.tradeStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	return analytics.FilterTrades(trades, filter), nil
}

// errBadFilter marks query-parameter errors so handlers can answer 400
// instead of 500.
var errBadFilter = errors.New("bad filter")

// parseFilter reads the symbol/side/market/from/to query parameters.
// Absent parameters leave the criterion nil (match all).
func parseFilter(r *http.Request) (domain.TradeFilter, error) {
	var f domain.TradeFilter
	q := r.URL.Query()

	if v := q.Get("symbol"); v != "" {
		f.Symbol = &v
	}
	if v := q.Get("side"); v != "" {
		side := domain.OrderSide(v)
		if side != domain.SideLong && side != domain.SideShort {
			return f, fmt.Errorf("%w: invalid side %q", errBadFilter, v)
		}
		f.Side = &side
	}
	if v := q.Get("market"); v != "" {
		market := domain.MarketType(v)
		if market != domain.MarketSpot && market != domain.MarketPerp {
			return f, fmt.Errorf("%w: invalid market %q", errBadFilter, v)
		}
		f.MarketType = &market
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("%w: invalid from time: %v", errBadFilter, err)
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("%w: invalid to time: %v", errBadFilter, err)
		}
		f.To = &t
	}
	return f, nil
}

func (s *apiServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	s.writeJSON(w, toSummaryResponse(analytics.ComputeSummary(trades)))
}

func (s *apiServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	daily := analytics.ComputeDailyPnl(trades)
	out := make([]dailyPnlResponse, 0, len(daily))
	for _, d := range daily {
		out = append(out, dailyPnlResponse{
			Date:          d.Date,
			Pnl:           d.Pnl,
			CumulativePnl: d.CumulativePnl,
			TradeCount:    d.TradeCount,
			Volume:        d.Volume,
			Fees:          d.Fees,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleDrawdown(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	points := analytics.ComputeDrawdown(analytics.ComputeDailyPnl(trades))
	out := make([]drawdownResponse, 0, len(points))
	for _, p := range points {
		out = append(out, drawdownResponse{
			Date:            p.Date,
			Drawdown:        p.Drawdown,
			DrawdownPercent: p.DrawdownPercent,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	sessions := analytics.ComputeSessionPerformance(trades)
	out := make([]sessionResponse, 0, len(sessions))
	for _, sp := range sessions {
		out = append(out, sessionResponse{
			Session:    string(sp.Session),
			Pnl:        sp.Pnl,
			TradeCount: sp.TradeCount,
			WinRate:    sp.WinRate,
			AvgPnl:     sp.AvgPnl,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleHourly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	hours := analytics.ComputeHourlyPerformance(trades)
	out := make([]hourlyResponse, 0, len(hours))
	for _, h := range hours {
		out = append(out, hourlyResponse{
			Hour:       h.Hour,
			Pnl:        h.Pnl,
			TradeCount: h.TradeCount,
			WinRate:    h.WinRate,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleOrderTypes(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	types := analytics.ComputeOrderTypePerformance(trades)
	out := make([]orderTypeResponse, 0, len(types))
	for _, ot := range types {
		out = append(out, orderTypeResponse{
			OrderType:  string(ot.OrderType),
			Pnl:        ot.Pnl,
			TradeCount: ot.TradeCount,
			WinRate:    ot.WinRate,
			AvgPnl:     ot.AvgPnl,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleSymbols(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	symbols := analytics.ComputeSymbolPerformance(trades)
	out := make([]symbolResponse, 0, len(symbols))
	for _, sp := range symbols {
		out = append(out, symbolResponse{
			Symbol:       sp.Symbol,
			Pnl:          sp.Pnl,
			TradeCount:   sp.TradeCount,
			WinRate:      sp.WinRate,
			AvgTradeSize: sp.AvgTradeSize,
			BestTrade:    sp.BestTrade,
			WorstTrade:   sp.WorstTrade,
			PnlTrend:     sp.PnlTrend,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleSymbolList(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.stores.tradeStore.GetAll(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, analytics.UniqueSymbols(trades))
}

func (s *apiServer) handleMonthly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	months := analytics.ComputeMonthlyReturns(trades)
	out := make([]monthlyResponse, 0, len(months))
	for _, m := range months {
		out = append(out, monthlyResponse{
			Month:      m.Month,
			Label:      m.Label,
			Pnl:        m.Pnl,
			TradeCount: m.TradeCount,
			WinRate:    m.WinRate,
			BestDay:    m.BestDay,
			WorstDay:   m.WorstDay,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleRisk(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	risk := analytics.ComputeRiskScore(trades, analytics.ComputeSummary(trades))
	s.writeJSON(w, riskResponse{
		Overall:          risk.Overall,
		LeverageScore:    risk.LeverageScore,
		PositionSizing:   risk.PositionSizing,
		WinRateScore:     risk.WinRateScore,
		DrawdownScore:    risk.DrawdownScore,
		ConsistencyScore: risk.ConsistencyScore,
		Label:            string(risk.Label),
		Color:            risk.Color,
	})
}

func (s *apiServer) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	patterns := analytics.DetectPatterns(trades, time.Now().UTC())
	out := make([]patternResponse, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, patternResponse{
			Type:       string(p.Type),
			Severity:   string(p.Severity),
			Message:    p.Message,
			TradeIDs:   p.TradeIDs,
			DetectedAt: p.DetectedAt,
		})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleFeeBreakdown(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	records, err := s.stores.feeStore.GetAll(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	slices := analytics.FeeBreakdown(records)
	out := make([]feeSliceResponse, 0, len(slices))
	for _, sl := range slices {
		out = append(out, feeSliceResponse{Name: sl.Name, Value: sl.Value, Color: sl.Color})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleCumulativeFees(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	records, err := s.stores.feeStore.GetAll(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	points := analytics.CumulativeFees(records)
	out := make([]cumulativeFeeResponse, 0, len(points))
	for _, p := range points {
		out = append(out, cumulativeFeeResponse{Date: p.Date, Cumulative: p.Cumulative})
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleTrades(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	trades, err := s.filteredTrades(r.Context(), r)
	if err != nil {
		s.clientOrServerError(w, err)
		return
	}
	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, toTradeResponse(t))
	}
	s.writeJSON(w, out)
}

func (s *apiServer) handleFunding(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	payments, err := s.stores.fundingStore.GetAll(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	out := make([]fundingResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, fundingResponse{
			ID:           p.ID,
			Symbol:       p.Symbol,
			Timestamp:    p.Timestamp,
			Amount:       p.Amount,
			Rate:         p.Rate,
			PositionSize: p.PositionSize,
		})
	}
	s.writeJSON(w, out)
}

// handleAnnotationList serves GET /api/annotations (all annotations).
func (s *apiServer) handleAnnotationList(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	all, err := s.annotations.GetAll(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	out := make([]annotationResponse, 0, len(all))
	for _, a := range all {
		out = append(out, toAnnotationResponse(a))
	}
	s.writeJSON(w, out)
}

// handleAnnotation serves GET and PUT /api/annotations/{tradeId}.
func (s *apiServer) handleAnnotation(w http.ResponseWriter, r *http.Request) {
	tradeID := strings.TrimPrefix(r.URL.Path, "/api/annotations/")
	if tradeID == "" || strings.Contains(tradeID, "/") {
		http.Error(w, "trade id required", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := s.annotations.Get(r.Context(), tradeID)
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "annotation not found", http.StatusNotFound)
			return
		}
		if err != nil {
			s.serverError(w, err)
			return
		}
		s.writeJSON(w, toAnnotationResponse(a))

	case http.MethodPut:
		var req annotationPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		a, err := s.annotations.Upsert(r.Context(), tradeID, domain.AnnotationPatch{
			Notes:         req.Notes,
			Tags:          req.Tags,
			Rating:        req.Rating,
			ScreenshotURL: req.ScreenshotURL,
		})
		if errors.Is(err, storage.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			s.serverError(w, err)
			return
		}
		s.writeJSON(w, toAnnotationResponse(a))

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// requireGet rejects non-GET requests with 405.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *apiServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("Encode response: %v", err)
	}
}

func (s *apiServer) serverError(w http.ResponseWriter, err error) {
	s.logger.Printf("Request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// clientOrServerError maps filter parse errors to 400 and everything else
// to 500. parseFilter errors are the only client-caused failures on the
// read endpoints.
func (s *apiServer) clientOrServerError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadFilter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.serverError(w, err)
}

// Response shapes. Field names follow the dashboard's camelCase contract.

type summaryResponse struct {
	TotalPnl         float64 `json:"totalPnl"`
	UnrealizedPnl    float64 `json:"unrealizedPnl"`
	TotalVolume      float64 `json:"totalVolume"`
	TotalFees        float64 `json:"totalFees"`
	TotalMakerRebate float64 `json:"totalMakerRebate"`
	NetFees          float64 `json:"netFees"`

	WinRate     float64 `json:"winRate"`
	TotalTrades int     `json:"totalTrades"`
	WinCount    int     `json:"winCount"`
	LossCount   int     `json:"lossCount"`

	AvgTradeDuration float64 `json:"avgTradeDuration"`

	LongCount  int     `json:"longCount"`
	ShortCount int     `json:"shortCount"`
	LongPnl    float64 `json:"longPnl"`
	ShortPnl   float64 `json:"shortPnl"`

	LargestWin  float64 `json:"largestWin"`
	LargestLoss float64 `json:"largestLoss"`
	AvgWin      float64 `json:"avgWin"`
	AvgLoss     float64 `json:"avgLoss"`

	MaxDrawdown        float64 `json:"maxDrawdown"`
	MaxDrawdownPercent float64 `json:"maxDrawdownPercent"`

	// ProfitFactor is null when there are wins and no losses: JSON has no
	// Infinity and encoding/json refuses to marshal one.
	ProfitFactor *float64 `json:"profitFactor"`
	Expectancy   float64  `json:"expectancy"`

	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
	WorstStreak   int `json:"worstStreak"`

	SharpeRatio  float64 `json:"sharpeRatio"`
	SortinoRatio float64 `json:"sortinoRatio"`
}

func toSummaryResponse(s domain.AnalyticsSummary) summaryResponse {
	return summaryResponse{
		TotalPnl:           s.TotalPnl,
		UnrealizedPnl:      s.UnrealizedPnl,
		TotalVolume:        s.TotalVolume,
		TotalFees:          s.TotalFees,
		TotalMakerRebate:   s.TotalMakerRebate,
		NetFees:            s.NetFees,
		WinRate:            s.WinRate,
		TotalTrades:        s.TotalTrades,
		WinCount:           s.WinCount,
		LossCount:          s.LossCount,
		AvgTradeDuration:   s.AvgTradeDuration,
		LongCount:          s.LongCount,
		ShortCount:         s.ShortCount,
		LongPnl:            s.LongPnl,
		ShortPnl:           s.ShortPnl,
		LargestWin:         s.LargestWin,
		LargestLoss:        s.LargestLoss,
		AvgWin:             s.AvgWin,
		AvgLoss:            s.AvgLoss,
		MaxDrawdown:        s.MaxDrawdown,
		MaxDrawdownPercent: s.MaxDrawdownPercent,
		ProfitFactor:       finite(s.ProfitFactor),
		Expectancy:         s.Expectancy,
		CurrentStreak:      s.CurrentStreak,
		BestStreak:         s.BestStreak,
		WorstStreak:        s.WorstStreak,
		SharpeRatio:        s.SharpeRatio,
		SortinoRatio:       s.SortinoRatio,
	}
}

// finite returns nil for values JSON cannot carry.
func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

type dailyPnlResponse struct {
	Date          string  `json:"date"`
	Pnl           float64 `json:"pnl"`
	CumulativePnl float64 `json:"cumulativePnl"`
	TradeCount    int     `json:"tradeCount"`
	Volume        float64 `json:"volume"`
	Fees          float64 `json:"fees"`
}

type drawdownResponse struct {
	Date            string  `json:"date"`
	Drawdown        float64 `json:"drawdown"`
	DrawdownPercent float64 `json:"drawdownPercent"`
}

type sessionResponse struct {
	Session    string  `json:"session"`
	Pnl        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
	AvgPnl     float64 `json:"avgPnl"`
}

type hourlyResponse struct {
	Hour       int     `json:"hour"`
	Pnl        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
}

type orderTypeResponse struct {
	OrderType  string  `json:"orderType"`
	Pnl        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
	AvgPnl     float64 `json:"avgPnl"`
}

type symbolResponse struct {
	Symbol       string    `json:"symbol"`
	Pnl          float64   `json:"pnl"`
	TradeCount   int       `json:"tradeCount"`
	WinRate      float64   `json:"winRate"`
	AvgTradeSize float64   `json:"avgTradeSize"`
	BestTrade    float64   `json:"bestTrade"`
	WorstTrade   float64   `json:"worstTrade"`
	PnlTrend     []float64 `json:"pnlTrend"`
}

type monthlyResponse struct {
	Month      string  `json:"month"`
	Label      string  `json:"label"`
	Pnl        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
	BestDay    float64 `json:"bestDay"`
	WorstDay   float64 `json:"worstDay"`
}

type riskResponse struct {
	Overall          int    `json:"overall"`
	LeverageScore    int    `json:"leverageScore"`
	PositionSizing   int    `json:"positionSizing"`
	WinRateScore     int    `json:"winRateScore"`
	DrawdownScore    int    `json:"drawdownScore"`
	ConsistencyScore int    `json:"consistencyScore"`
	Label            string `json:"label"`
	Color            string `json:"color"`
}

type patternResponse struct {
	Type       string    `json:"type"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	TradeIDs   []string  `json:"tradeIds"`
	DetectedAt time.Time `json:"detectedAt"`
}

type feeSliceResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type cumulativeFeeResponse struct {
	Date       string  `json:"date"`
	Cumulative float64 `json:"cumulative"`
}

type tradeResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	MarketType string `json:"marketType"`
	Side       string `json:"side"`
	OrderType  string `json:"orderType"`
	Status     string `json:"status"`

	EntryPrice float64  `json:"entryPrice"`
	ExitPrice  *float64 `json:"exitPrice"`
	Size       float64  `json:"size"`
	Leverage   int      `json:"leverage"`

	EntryTime time.Time  `json:"entryTime"`
	ExitTime  *time.Time `json:"exitTime"`

	Pnl             float64 `json:"pnl"`
	PnlPercent      float64 `json:"pnlPercent"`
	Fees            float64 `json:"fees"`
	MakerRebate     float64 `json:"makerRebate"`
	FundingPaid     float64 `json:"fundingPaid"`
	FundingReceived float64 `json:"fundingReceived"`

	TxSignature     string  `json:"txSignature"`
	ExitTxSignature *string `json:"exitTxSignature"`
}

func toTradeResponse(t *domain.Trade) tradeResponse {
	return tradeResponse{
		ID:              t.ID,
		Symbol:          t.Symbol,
		MarketType:      string(t.MarketType),
		Side:            string(t.Side),
		OrderType:       string(t.OrderType),
		Status:          string(t.Status),
		EntryPrice:      t.EntryPrice,
		ExitPrice:       t.ExitPrice,
		Size:            t.Size,
		Leverage:        t.Leverage,
		EntryTime:       t.EntryTime,
		ExitTime:        t.ExitTime,
		Pnl:             t.Pnl,
		PnlPercent:      t.PnlPercent,
		Fees:            t.Fees,
		MakerRebate:     t.MakerRebate,
		FundingPaid:     t.FundingPaid,
		FundingReceived: t.FundingReceived,
		TxSignature:     t.TxSignature,
		ExitTxSignature: t.ExitTxSignature,
	}
}

type fundingResponse struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Timestamp    time.Time `json:"timestamp"`
	Amount       float64   `json:"amount"`
	Rate         float64   `json:"rate"`
	PositionSize float64   `json:"positionSize"`
}

type annotationResponse struct {
	TradeID       string    `json:"tradeId"`
	Notes         string    `json:"notes"`
	Tags          []string  `json:"tags"`
	Rating        int       `json:"rating"`
	ScreenshotURL string    `json:"screenshotUrl"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAnnotationResponse(a *domain.JournalAnnotation) annotationResponse {
	return annotationResponse{
		TradeID:       a.TradeID,
		Notes:         a.Notes,
		Tags:          a.Tags,
		Rating:        a.Rating,
		ScreenshotURL: a.ScreenshotURL,
		UpdatedAt:     a.UpdatedAt,
	}
}

type annotationPatchRequest struct {
	Notes         *string  `json:"notes"`
	Tags          []string `json:"tags"`
	Rating        *int     `json:"rating"`
	ScreenshotURL *string  `json:"screenshotUrl"`
}
