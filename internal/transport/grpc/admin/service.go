package admin

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "storefront.admin.v1.AdminService"

// Method names of the admin service. Every method takes and returns a
// google.protobuf.Struct.
const (
	MethodLoadCollection             = "LoadCollection"
	MethodSaveCollection             = "SaveCollection"
	MethodSaveSettings               = "SaveSettings"
	MethodSaveAll                    = "SaveAll"
	MethodListOrders                 = "ListOrders"
	MethodUpdateOrderStatus          = "UpdateOrderStatus"
	MethodDeleteOrder                = "DeleteOrder"
	MethodListContactRequests        = "ListContactRequests"
	MethodUpdateContactRequestStatus = "UpdateContactRequestStatus"
	MethodDeleteContactRequest       = "DeleteContactRequest"
	MethodListSubscriptions          = "ListSubscriptions"
	MethodConfirmSubscription        = "ConfirmSubscription"
	MethodRevokeSubscription         = "RevokeSubscription"
	MethodReplyToFeedback            = "ReplyToFeedback"
	MethodNewItem                    = "NewItem"
	MethodNewCategory                = "NewCategory"
)

type AdminServer interface {
	LoadCollection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveCollection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateOrderStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListContactRequests(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateContactRequestStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteContactRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSubscriptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmSubscription(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RevokeSubscription(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReplyToFeedback(context.Context, *structpb.Struct) (*structpb.Struct, error)
	NewItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	NewCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(AdminServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdminServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AdminServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodLoadCollection, AdminServer.LoadCollection),
		unary(MethodSaveCollection, AdminServer.SaveCollection),
		unary(MethodSaveSettings, AdminServer.SaveSettings),
		unary(MethodSaveAll, AdminServer.SaveAll),
		unary(MethodListOrders, AdminServer.ListOrders),
		unary(MethodUpdateOrderStatus, AdminServer.UpdateOrderStatus),
		unary(MethodDeleteOrder, AdminServer.DeleteOrder),
		unary(MethodListContactRequests, AdminServer.ListContactRequests),
		unary(MethodUpdateContactRequestStatus, AdminServer.UpdateContactRequestStatus),
		unary(MethodDeleteContactRequest, AdminServer.DeleteContactRequest),
		unary(MethodListSubscriptions, AdminServer.ListSubscriptions),
		unary(MethodConfirmSubscription, AdminServer.ConfirmSubscription),
		unary(MethodRevokeSubscription, AdminServer.RevokeSubscription),
		unary(MethodReplyToFeedback, AdminServer.ReplyToFeedback),
		unary(MethodNewItem, AdminServer.NewItem),
		unary(MethodNewCategory, AdminServer.NewCategory),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/admin/v1/admin.proto",
}

func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the admin service by method name.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
