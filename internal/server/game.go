package server

import (
	"context"

	"rps-master/internal/api"
	"rps-master/internal/game"
	"rps-master/internal/service"

	"connectrpc.com/connect"
)

type GameServer struct {
	svc *service.GameService
}

func NewGameServer(svc *service.GameService) *GameServer {
	return &GameServer{svc: svc}
}

func (s *GameServer) CreatePlayer(ctx context.Context, req *connect.Request[api.CreatePlayerRequest]) (*connect.Response[api.Profile], error) {
	profile, err := s.svc.CreatePlayer(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toProfile(profile)), nil
}

func (s *GameServer) GetProfile(ctx context.Context, req *connect.Request[api.PlayerRequest]) (*connect.Response[api.Profile], error) {
	profile, err := s.svc.GetProfile(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toProfile(profile)), nil
}

func (s *GameServer) PlayRound(ctx context.Context, req *connect.Request[api.PlayRoundRequest]) (*connect.Response[api.PlayRoundResponse], error) {
	move, err := game.ParseMove(req.Msg.Move)
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := s.svc.PlayRound(ctx, req.Msg.PlayerID, move)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.PlayRoundResponse{
		RoundID:      out.Round.ID,
		PlayerMove:   out.Result.PlayerMove.String(),
		OpponentMove: out.Result.OpponentMove.String(),
		Outcome:      out.Result.Outcome.String(),
		Reward:       toReward(out.Result.Reward),
		Profile:      *toProfile(out.Profile),
	}), nil
}

func (s *GameServer) Purchase(ctx context.Context, req *connect.Request[api.CosmeticRequest]) (*connect.Response[api.Profile], error) {
	profile, err := s.svc.Purchase(ctx, req.Msg.PlayerID, game.CosmeticID(req.Msg.CosmeticID))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toProfile(profile)), nil
}

func (s *GameServer) SelectCosmetic(ctx context.Context, req *connect.Request[api.CosmeticRequest]) (*connect.Response[api.Profile], error) {
	profile, err := s.svc.SelectCosmetic(ctx, req.Msg.PlayerID, game.CosmeticID(req.Msg.CosmeticID))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toProfile(profile)), nil
}

func (s *GameServer) Reset(ctx context.Context, req *connect.Request[api.PlayerRequest]) (*connect.Response[api.Profile], error) {
	profile, err := s.svc.Reset(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toProfile(profile)), nil
}

func (s *GameServer) ListRounds(ctx context.Context, req *connect.Request[api.ListRoundsRequest]) (*connect.Response[api.ListRoundsResponse], error) {
	rounds, err := s.svc.ListRounds(ctx, req.Msg.PlayerID, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListRoundsResponse{Rounds: make([]api.Round, 0, len(rounds))}
	for _, r := range rounds {
		resp.Rounds = append(resp.Rounds, toRound(r))
	}
	return connect.NewResponse(resp), nil
}

func (s *GameServer) GetCatalog(_ context.Context, _ *connect.Request[api.CatalogRequest]) (*connect.Response[api.CatalogResponse], error) {
	cosmetics, tiers := s.svc.Catalog()

	resp := &api.CatalogResponse{
		Cosmetics: make([]api.Cosmetic, 0, len(cosmetics)),
		Tiers:     make([]api.Tier, 0, len(tiers)),
	}
	for _, c := range cosmetics {
		resp.Cosmetics = append(resp.Cosmetics, toCosmetic(c))
	}
	for _, t := range tiers {
		resp.Tiers = append(resp.Tiers, toTier(t))
	}
	return connect.NewResponse(resp), nil
}

func (s *GameServer) ExportSave(ctx context.Context, req *connect.Request[api.PlayerRequest]) (*connect.Response[api.ExportSaveResponse], error) {
	data, err := s.svc.ExportSave(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ExportSaveResponse{Data: data}), nil
}

func (s *GameServer) ImportSave(ctx context.Context, req *connect.Request[api.ImportSaveRequest]) (*connect.Response[api.Profile], error) {
	profile, err := s.svc.ImportSave(ctx, req.Msg.PlayerID, req.Msg.Data)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toProfile(profile)), nil
}
