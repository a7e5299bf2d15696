package web

import (
	"github.com/goserg/ratingengine/internal/config"
	"github.com/goserg/ratingengine/internal/domain"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/rank"
	"github.com/goserg/ratingengine/internal/service"
	"github.com/goserg/ratingengine/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	actorKey = "actor"

	headerActorID    = "X-Actor-ID"
	headerActorRoles = "X-Actor-Roles"
)

type Server struct {
	service *service.Service
	app     *fiber.App
	cfg     config.Server
	log     *logrus.Entry
}

func New(s *service.Service, cfg config.Server, log *logrus.Logger) *Server {
	server := Server{
		service: s,
		cfg:     cfg,
		log:     log.WithField("from", "web"),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          server.handleError,
		DisableStartupMessage: !cfg.Debug,
	})
	app.Use(webpath.Api, server.actor)

	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.JSON(webpath.Path())
	})
	app.Get(webpath.ApiTiers, server.handleTiers)
	app.Post(webpath.ApiMatches, server.handleReportMatch)
	app.Get(webpath.ApiRatings, server.handleLeaderboard)
	app.Get(webpath.ApiRatingPreview, server.handlePreview)
	app.Get(webpath.ApiRating, server.handleRating)
	app.Get(webpath.ApiRatingOpponents, server.handleOpponents)
	app.Get(webpath.ApiRatingChanges, server.handleRatingChanges)
	app.Get(webpath.ApiGlicko2, server.handleGlicko2)
	app.Post(webpath.ApiBrackets, server.handleGenerateBracket)
	app.Get(webpath.ApiBracket, server.handleGetBracket)
	app.Get(webpath.ApiBracketPlayable, server.handlePlayable)
	app.Post(webpath.ApiBracketMatchStart, server.handleStartMatch)
	app.Post(webpath.ApiBracketMatchResult, server.handleReportResult)
	app.Get(webpath.ApiTournamentBracket, server.handleTournamentBracket)
	app.Get(webpath.ApiExport, server.handleExport)
	app.Post(webpath.ApiImport, server.handleImport)
	server.app = app
	return &server
}

func (s *Server) Serve() error {
	if s.cfg.TLS() {
		s.log.WithField("addr", s.cfg.Addr()).Info("listening with tls")
		return s.app.ListenTLS(s.cfg.Addr(), s.cfg.CertFile, s.cfg.KeyFile)
	}
	s.log.WithField("addr", s.cfg.Addr()).Info("listening")
	return s.app.Listen(s.cfg.Addr())
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// actor reads who is calling from headers set by the gateway in front of the engine.
func (s *Server) actor(ctx *fiber.Ctx) error {
	actor := policy.NewActor(ctx.Get(headerActorID), policy.ParseRoles(ctx.Get(headerActorRoles))...)
	ctx.Locals(actorKey, actor)
	return ctx.Next()
}

func actorFrom(ctx *fiber.Ctx) policy.Actor {
	actor, _ := ctx.Locals(actorKey).(policy.Actor)
	return actor
}

func paramID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func queryID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Query(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, dst interface{}) error {
	if err := ctx.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *Server) handleTiers(ctx *fiber.Ctx) error {
	return ctx.JSON(rank.Tiers())
}

func (s *Server) handleReportMatch(ctx *fiber.Ctx) error {
	var req reportMatchRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	res, err := s.service.ReportMatch(ctx.UserContext(), actorFrom(ctx), req.toDomain())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(newMatchReportResponse(res))
}

func (s *Server) handleLeaderboard(ctx *fiber.Ctx) error {
	standings, err := s.service.Leaderboard(ctx.UserContext(), ctx.Query("scope"))
	if err != nil {
		return err
	}
	resp := make([]standingResponse, 0, len(standings))
	for _, st := range standings {
		resp = append(resp, newStandingResponse(st, false))
	}
	return ctx.JSON(resp)
}

func (s *Server) handlePreview(ctx *fiber.Ctx) error {
	winner, err := queryID(ctx, "winner")
	if err != nil {
		return err
	}
	loser, err := queryID(ctx, "loser")
	if err != nil {
		return err
	}
	delta, err := s.service.Preview(ctx.UserContext(), winner, loser, ctx.Query("scope"))
	if err != nil {
		return err
	}
	return ctx.JSON(newPreviewResponse(delta))
}

func (s *Server) handleRating(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	st, err := s.service.GetRating(ctx.UserContext(), id, ctx.Query("scope"))
	if err != nil {
		return err
	}
	return ctx.JSON(newStandingResponse(st, true))
}

func (s *Server) handleOpponents(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	records, err := s.service.HeadToHead(ctx.UserContext(), id, ctx.Query("scope"))
	if err != nil {
		return err
	}
	resp := make([]recordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, recordResponse{
			OpponentID: r.OpponentID,
			Wins:       r.Wins,
			Losses:     r.Losses,
			Delta:      r.Delta,
		})
	}
	return ctx.JSON(resp)
}

func (s *Server) handleRatingChanges(ctx *fiber.Ctx) error {
	changes, err := s.service.RatingChanges(ctx.UserContext(), ctx.Query("scope"))
	if err != nil {
		return err
	}
	resp := make([]ratingChangeResponse, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		resp = append(resp, newRatingChangeResponse(changes[i]))
	}
	return ctx.JSON(resp)
}

func (s *Server) handleGlicko2(ctx *fiber.Ctx) error {
	board, err := s.service.Glicko2Board(ctx.UserContext(), ctx.Query("scope"))
	if err != nil {
		return err
	}
	resp := make([]glickoResponse, 0, len(board))
	for _, r := range board {
		resp = append(resp, glickoResponse{
			CompetitorID: r.CompetitorID,
			Rating:       r.Rating,
			Deviation:    r.Deviation,
			Volatility:   r.Volatility,
			Min:          r.Interval.Min,
			Max:          r.Interval.Max,
			Matches:      r.Matches,
		})
	}
	return ctx.JSON(resp)
}

func (s *Server) handleGenerateBracket(ctx *fiber.Ctx) error {
	var req generateBracketRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	b, err := s.service.GenerateBracket(ctx.UserContext(), actorFrom(ctx), req.toDomain())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(newBracketResponse(b))
}

func (s *Server) handleGetBracket(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	b, err := s.service.GetBracket(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(newBracketResponse(b))
}

func (s *Server) handlePlayable(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	matches, err := s.service.PlayableMatches(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	resp := make([]bracketMatchResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, newBracketMatchResponse(m))
	}
	return ctx.JSON(resp)
}

func (s *Server) handleTournamentBracket(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	b, err := s.service.BracketByTournament(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(newBracketResponse(b))
}

func (s *Server) handleStartMatch(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	b, err := s.service.StartBracketMatch(ctx.UserContext(), actorFrom(ctx), id, ctx.Params("match"))
	if err != nil {
		return err
	}
	return ctx.JSON(newBracketResponse(b))
}

func (s *Server) handleReportResult(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	var req reportResultRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	report, err := s.service.ReportBracketResult(ctx.UserContext(), actorFrom(ctx), id, ctx.Params("match"),
		req.WinnerID, domain.Score{Winner: req.WinnerScore, Loser: req.LoserScore})
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"bracket": newBracketResponse(report.Bracket),
		"rating":  newMatchReportResponse(report.Rating),
	})
}

func (s *Server) handleExport(ctx *fiber.Ctx) error {
	data, err := s.service.Export(ctx.UserContext())
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="rating-export.json"`)
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(data)
}

func (s *Server) handleImport(ctx *fiber.Ctx) error {
	err := s.service.Import(ctx.UserContext(), actorFrom(ctx), ctx.Body())
	if err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
