package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"combgame/internal/domain/analysis"
	errs "combgame/internal/errors"
	"combgame/internal/httpresponse"
	"combgame/internal/report"
	analysisuc "combgame/internal/usecase/analysis"
	"combgame/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errMalformedRequest = errors.New("request does not match its kind")

var badInput = []error{
	errMalformedRequest,
	errs.ErrInvalidNotation,
	errs.ErrInvalidBoard,
	errs.ErrBoardTooLarge,
	errs.ErrNotShort,
	errs.ErrNotImpartial,
}

type AnalysisHandler struct {
	log        *zap.SugaredLogger
	analysisUC *analysisuc.AnalysisUseCase
}

func NewAnalysisHandler(log *zap.SugaredLogger, analysisUC *analysisuc.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{
		log:        log,
		analysisUC: analysisUC,
	}
}

func (h *AnalysisHandler) Routes(r chi.Router) {
	r.Post("/compare", h.HandleCompare)
	r.Post("/grundy", h.HandleGrundy)
	r.Post("/domineering", h.HandleDomineering)
	r.Post("/domineering/report", h.HandleDomineeringReport)
	r.Get("/analysis/{id}", h.HandleGetAnalysis)
	r.Get("/analyses", h.HandleListAnalyses)
	r.Get("/ws/analyze", h.HandleLiveAnalysis)
}

// statusFor maps use case errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrAnalysisNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	for _, target := range badInput {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (h *AnalysisHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error(err)
	}
	httpresponse.WriteErrorWithStatus(w, status, err)
}

func (h *AnalysisHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSONRequest(w, r, dst); err != nil {
		h.log.Infof("%s: %v", r.URL.Path, err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{
			ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc,
		})
		return false
	}
	return true
}

// HandleCompare godoc
// @Summary Compare two games
// @Description Decides how two games in {L|R} notation are ordered and names their outcome classes
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body analysis.CompareRequest true "Games to compare"
// @Success 200 {object} analysis.Analysis
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 504 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /compare [post]
func (h *AnalysisHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req analysis.CompareRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.analysisUC.Compare(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res)
}

// HandleGrundy godoc
// @Summary Grundy value
// @Description Computes the nimber an impartial game is equivalent to
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body analysis.GrundyRequest true "Impartial game"
// @Success 200 {object} analysis.Analysis
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 504 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /grundy [post]
func (h *AnalysisHandler) HandleGrundy(w http.ResponseWriter, r *http.Request) {
	var req analysis.GrundyRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.analysisUC.Grundy(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res)
}

// HandleDomineering godoc
// @Summary Evaluate a Domineering board
// @Description Expands the board into its game tree and reports outcome, birthday and value
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body analysis.DomineeringRequest true "Board rows of '#' and '.'"
// @Success 200 {object} analysis.Analysis
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 504 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /domineering [post]
func (h *AnalysisHandler) HandleDomineering(w http.ResponseWriter, r *http.Request) {
	var req analysis.DomineeringRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.analysisUC.Domineering(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res)
}

// HandleDomineeringReport godoc
// @Summary Domineering report
// @Description Answers with the board analysis rendered as a PDF
// @Tags analysis
// @Accept json
// @Produce application/pdf
// @Param request body analysis.DomineeringRequest true "Board rows of '#' and '.'"
// @Success 200 {file} file
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /domineering/report [post]
func (h *AnalysisHandler) HandleDomineeringReport(w http.ResponseWriter, r *http.Request) {
	var req analysis.DomineeringRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.analysisUC.Domineering(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Domineering(&buf, *res.Domineering); err != nil {
		h.log.Errorf("failed to render report for %s: %v", res.ID, err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "domineering-"+res.ID+".pdf"))
	_, _ = w.Write(buf.Bytes())
}

// HandleGetAnalysis godoc
// @Summary Archived analysis
// @Tags analysis
// @Produce json
// @Param id path string true "Analysis id"
// @Success 200 {object} analysis.Analysis
// @Failure 404 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /analysis/{id} [get]
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.analysisUC.GetAnalysis(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res)
}

// HandleListAnalyses godoc
// @Summary List archived analyses
// @Description Pages through analyses, newest first
// @Tags analysis
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} analysis.AnalysisPage
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /analyses [get]
func (h *AnalysisHandler) HandleListAnalyses(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, fmt.Errorf("invalid page %q", raw))
			return
		}
		page = n
	}
	res, err := h.analysisUC.ListAnalyses(r.Context(), page)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, res)
}

// HandleLiveAnalysis godoc
// @Summary Live analysis
// @Description Upgrades to a websocket. Each analysis.Request read from it is answered with one {Status, Body} envelope, in order.
// @Tags analysis
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/analyze [get]
//
// HandleLiveAnalysis keeps a websocket open and answers every analysis
// request read from it with one enveloped response, in order.
func (h *AnalysisHandler) HandleLiveAnalysis(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade error:", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var req analysis.Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Infof("live analysis closed: %v", err)
			}
			return
		}

		var msg httpresponse.Response
		res, err := h.dispatch(ctx, req)
		if err != nil {
			msg = httpresponse.Envelope(statusFor(err), httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		} else {
			msg = httpresponse.Envelope(http.StatusOK, res)
		}
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Infof("live analysis write failed: %v", err)
			return
		}
	}
}

func (h *AnalysisHandler) dispatch(ctx context.Context, req analysis.Request) (analysis.Analysis, error) {
	switch {
	case req.Kind == analysis.KindCompare && req.Compare != nil:
		return h.analysisUC.Compare(ctx, *req.Compare)
	case req.Kind == analysis.KindGrundy && req.Grundy != nil:
		return h.analysisUC.Grundy(ctx, *req.Grundy)
	case req.Kind == analysis.KindDomineering && req.Domineering != nil:
		return h.analysisUC.Domineering(ctx, *req.Domineering)
	}
	return analysis.Analysis{}, fmt.Errorf("%w: kind %q", errMalformedRequest, req.Kind)
}
