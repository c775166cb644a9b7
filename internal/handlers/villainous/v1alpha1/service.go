package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "villainous.api.v1alpha1.GameService"

// Method names
const (
	MethodCreateGame         = "CreateGame"
	MethodAddPlayer          = "AddPlayer"
	MethodRemovePlayer       = "RemovePlayer"
	MethodStartGame          = "StartGame"
	MethodMove               = "Move"
	MethodPerformAction      = "PerformAction"
	MethodEndTurn            = "EndTurn"
	MethodEndGame            = "EndGame"
	MethodGetState           = "GetState"
	MethodGetVictoryProgress = "GetVictoryProgress"
	MethodGetActionLog       = "GetActionLog"
	MethodListGames          = "ListGames"
)

// FullMethod returns the wire path of a method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// GameServiceServer is the server API. Every message is a
// google.protobuf.Struct with snake_case fields.
type GameServiceServer interface {
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddPlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemovePlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Move(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PerformAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndTurn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetVictoryProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetActionLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListGames(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GameServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// GameServiceDesc describes the game service for grpc.Server
var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateGame, GameServiceServer.CreateGame),
		unary(MethodAddPlayer, GameServiceServer.AddPlayer),
		unary(MethodRemovePlayer, GameServiceServer.RemovePlayer),
		unary(MethodStartGame, GameServiceServer.StartGame),
		unary(MethodMove, GameServiceServer.Move),
		unary(MethodPerformAction, GameServiceServer.PerformAction),
		unary(MethodEndTurn, GameServiceServer.EndTurn),
		unary(MethodEndGame, GameServiceServer.EndGame),
		unary(MethodGetState, GameServiceServer.GetState),
		unary(MethodGetVictoryProgress, GameServiceServer.GetVictoryProgress),
		unary(MethodGetActionLog, GameServiceServer.GetActionLog),
		unary(MethodListGames, GameServiceServer.ListGames),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "villainous/api/v1alpha1/game.proto",
}

// RegisterGameServiceServer registers srv with s
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

// GameServiceClient calls a remote game service
type GameServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGameServiceClient wraps a connection
func NewGameServiceClient(cc grpc.ClientConnInterface) *GameServiceClient {
	return &GameServiceClient{cc: cc}
}

// Call invokes method with req
func (c *GameServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CallMap builds the request from a plain map
func (c *GameServiceClient) CallMap(ctx context.Context, method string, req map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, method, in, opts...)
}
