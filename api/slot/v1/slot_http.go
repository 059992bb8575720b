package v1

import (
	context "context"

	http "github.com/go-kratos/kratos/v2/transport/http"
)

const OperationSlotServiceListGames = "/slot.v1.SlotService/ListGames"
const OperationSlotServiceListJackpots = "/slot.v1.SlotService/ListJackpots"
const OperationSlotServiceGetPayTable = "/slot.v1.SlotService/GetPayTable"
const OperationSlotServiceOpenSession = "/slot.v1.SlotService/OpenSession"
const OperationSlotServiceListSessions = "/slot.v1.SlotService/ListSessions"
const OperationSlotServiceGetSession = "/slot.v1.SlotService/GetSession"
const OperationSlotServiceSpin = "/slot.v1.SlotService/Spin"
const OperationSlotServiceChangeBet = "/slot.v1.SlotService/ChangeBet"
const OperationSlotServiceCloseSession = "/slot.v1.SlotService/CloseSession"

type SlotServiceHTTPServer interface {
	ListGames(context.Context, *ListGamesRequest) (*ListGamesReply, error)
	ListJackpots(context.Context, *ListJackpotsRequest) (*ListJackpotsReply, error)
	GetPayTable(context.Context, *GetPayTableRequest) (*GetPayTableReply, error)
	OpenSession(context.Context, *OpenSessionRequest) (*SessionReply, error)
	ListSessions(context.Context, *ListSessionsRequest) (*ListSessionsReply, error)
	GetSession(context.Context, *GetSessionRequest) (*SessionReply, error)
	Spin(context.Context, *SpinRequest) (*SpinReply, error)
	ChangeBet(context.Context, *ChangeBetRequest) (*ChangeBetReply, error)
	CloseSession(context.Context, *CloseSessionRequest) (*CloseSessionReply, error)
}

func RegisterSlotServiceHTTPServer(s *http.Server, srv SlotServiceHTTPServer) {
	r := s.Route("/")
	r.GET("/v1/games", _SlotService_ListGames0_HTTP_Handler(srv))
	r.GET("/v1/jackpots", _SlotService_ListJackpots0_HTTP_Handler(srv))
	r.GET("/v1/paytable", _SlotService_GetPayTable0_HTTP_Handler(srv))
	r.POST("/v1/sessions", _SlotService_OpenSession0_HTTP_Handler(srv))
	r.GET("/v1/sessions", _SlotService_ListSessions0_HTTP_Handler(srv))
	r.GET("/v1/sessions/{session_id}", _SlotService_GetSession0_HTTP_Handler(srv))
	r.POST("/v1/sessions/{session_id}/spin", _SlotService_Spin0_HTTP_Handler(srv))
	r.POST("/v1/sessions/{session_id}/bet", _SlotService_ChangeBet0_HTTP_Handler(srv))
	r.DELETE("/v1/sessions/{session_id}", _SlotService_CloseSession0_HTTP_Handler(srv))
}

func _SlotService_ListGames0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListGamesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceListGames)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListGames(ctx, req.(*ListGamesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListGamesReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_ListJackpots0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListJackpotsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceListJackpots)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListJackpots(ctx, req.(*ListJackpotsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListJackpotsReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_GetPayTable0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetPayTableRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceGetPayTable)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetPayTable(ctx, req.(*GetPayTableRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*GetPayTableReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_OpenSession0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in OpenSessionRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceOpenSession)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.OpenSession(ctx, req.(*OpenSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SessionReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_ListSessions0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListSessionsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceListSessions)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListSessions(ctx, req.(*ListSessionsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListSessionsReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_GetSession0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetSessionRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceGetSession)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetSession(ctx, req.(*GetSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SessionReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_Spin0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SpinRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceSpin)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Spin(ctx, req.(*SpinRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SpinReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_ChangeBet0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ChangeBetRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceChangeBet)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ChangeBet(ctx, req.(*ChangeBetRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ChangeBetReply)
		return ctx.Result(200, reply)
	}
}

func _SlotService_CloseSession0_HTTP_Handler(srv SlotServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CloseSessionRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSlotServiceCloseSession)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.CloseSession(ctx, req.(*CloseSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*CloseSessionReply)
		return ctx.Result(200, reply)
	}
}
