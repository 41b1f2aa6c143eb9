// Package proto содержит gRPC-контракт сервиса цен из pricing.proto.
//
// Дескриптор файла собирается из descriptorpb при загрузке пакета и совпадает
// со схемой pricing.proto. Сообщения идут по сети как обычный protobuf,
// наружу отдаются типизированными структурами.
package proto

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	protobuf "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	PricingServiceName = "pricing.v1.PricingService"

	PricingService_PriceConfiguration_FullMethodName    = "/" + PricingServiceName + "/PriceConfiguration"
	PricingService_ValidateConfiguration_FullMethodName = "/" + PricingServiceName + "/ValidateConfiguration"

	pricingFileName = "pricing/v1/pricing.proto"
)

var (
	pricingFile = mustBuildPricingFile()

	configurationRequestDesc = pricingFile.Messages().ByName("ConfigurationRequest")
	priceResponseDesc        = pricingFile.Messages().ByName("PriceResponse")
	validationResponseDesc   = pricingFile.Messages().ByName("ValidationResponse")

	productIDField  = configurationRequestDesc.Fields().ByName("product_id")
	variantIDsField = configurationRequestDesc.Fields().ByName("variant_ids")
	totalPriceField = priceResponseDesc.Fields().ByName("total_price")
	validField      = validationResponseDesc.Fields().ByName("valid")
)

func mustBuildPricingFile() protoreflect.FileDescriptor {
	field := func(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, repeated bool) *descriptorpb.FieldDescriptorProto {
		label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
		if repeated {
			label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
		}
		return &descriptorpb.FieldDescriptorProto{
			Name:   protobuf.String(name),
			Number: protobuf.Int32(number),
			Type:   typ.Enum(),
			Label:  label.Enum(),
		}
	}
	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       protobuf.String(name),
			InputType:  protobuf.String(".pricing.v1." + in),
			OutputType: protobuf.String(".pricing.v1." + out),
		}
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:    protobuf.String(pricingFileName),
		Package: protobuf.String("pricing.v1"),
		Syntax:  protobuf.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: protobuf.String("ConfigurationRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("product_id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, false),
					field("variant_ids", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING, true),
				},
			},
			{
				Name: protobuf.String("PriceResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("total_price", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, false),
				},
			},
			{
				Name: protobuf.String("ValidationResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("valid", 1, descriptorpb.FieldDescriptorProto_TYPE_BOOL, false),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: protobuf.String("PricingService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("PriceConfiguration", "ConfigurationRequest", "PriceResponse"),
				method("ValidateConfiguration", "ConfigurationRequest", "ValidationResponse"),
			},
		}},
	}

	fd, err := protodesc.NewFile(file, protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s: %v", pricingFileName, err))
	}
	return fd
}

// ConfigurationRequest описывает товар и выбранные варианты, идентификаторы строками UUID.
type ConfigurationRequest struct {
	ProductID  string
	VariantIDs []string
}

func (r *ConfigurationRequest) message() *dynamicpb.Message {
	m := dynamicpb.NewMessage(configurationRequestDesc)
	m.Set(productIDField, protoreflect.ValueOfString(r.ProductID))
	if len(r.VariantIDs) > 0 {
		ids := m.Mutable(variantIDsField).List()
		for _, id := range r.VariantIDs {
			ids.Append(protoreflect.ValueOfString(id))
		}
	}
	return m
}

func configurationRequestFrom(m protoreflect.Message) *ConfigurationRequest {
	req := &ConfigurationRequest{ProductID: m.Get(productIDField).String()}

	ids := m.Get(variantIDsField).List()
	if ids.Len() > 0 {
		req.VariantIDs = make([]string, 0, ids.Len())
	}
	for i := 0; i < ids.Len(); i++ {
		req.VariantIDs = append(req.VariantIDs, ids.Get(i).String())
	}
	return req
}

type PriceResponse struct {
	TotalPrice string
}

func (r *PriceResponse) message() *dynamicpb.Message {
	m := dynamicpb.NewMessage(priceResponseDesc)
	m.Set(totalPriceField, protoreflect.ValueOfString(r.TotalPrice))
	return m
}

type ValidationResponse struct {
	Valid bool
}

func (r *ValidationResponse) message() *dynamicpb.Message {
	m := dynamicpb.NewMessage(validationResponseDesc)
	m.Set(validField, protoreflect.ValueOfBool(r.Valid))
	return m
}

// PricingServiceServer это серверная часть PricingService.
// Реализации встраивают UnimplementedPricingServiceServer.
type PricingServiceServer interface {
	PriceConfiguration(context.Context, *ConfigurationRequest) (*PriceResponse, error)
	ValidateConfiguration(context.Context, *ConfigurationRequest) (*ValidationResponse, error)
	mustEmbedUnimplementedPricingServiceServer()
}

type UnimplementedPricingServiceServer struct{}

func (UnimplementedPricingServiceServer) PriceConfiguration(context.Context, *ConfigurationRequest) (*PriceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PriceConfiguration not implemented")
}

func (UnimplementedPricingServiceServer) ValidateConfiguration(context.Context, *ConfigurationRequest) (*ValidationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateConfiguration not implemented")
}

func (UnimplementedPricingServiceServer) mustEmbedUnimplementedPricingServiceServer() {}

func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&PricingService_ServiceDesc, srv)
}

var PricingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PricingServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PriceConfiguration",
			Handler:    configurationHandler(PricingService_PriceConfiguration_FullMethodName, PricingServiceServer.PriceConfiguration),
		},
		{
			MethodName: "ValidateConfiguration",
			Handler:    configurationHandler(PricingService_ValidateConfiguration_FullMethodName, PricingServiceServer.ValidateConfiguration),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: pricingFileName,
}

type response interface {
	message() *dynamicpb.Message
}

// configurationHandler декодирует ConfigurationRequest и зовёт метод сервера.
// Перехватчики видят уже типизированный запрос.
func configurationHandler[Res response](
	fullMethod string,
	call func(PricingServiceServer, context.Context, *ConfigurationRequest) (Res, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := dynamicpb.NewMessage(configurationRequestDesc)
		if err := dec(in); err != nil {
			return nil, err
		}

		handler := func(ctx context.Context, req any) (any, error) {
			res, err := call(srv.(PricingServiceServer), ctx, req.(*ConfigurationRequest))
			if err != nil {
				return nil, err
			}
			return res.message(), nil
		}

		req := configurationRequestFrom(in)
		if interceptor == nil {
			return handler(ctx, req)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		return interceptor(ctx, req, info, handler)
	}
}

type PricingServiceClient interface {
	PriceConfiguration(ctx context.Context, in *ConfigurationRequest, opts ...grpc.CallOption) (*PriceResponse, error)
	ValidateConfiguration(ctx context.Context, in *ConfigurationRequest, opts ...grpc.CallOption) (*ValidationResponse, error)
}

type pricingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPricingServiceClient(cc grpc.ClientConnInterface) PricingServiceClient {
	return &pricingServiceClient{cc: cc}
}

func (c *pricingServiceClient) PriceConfiguration(ctx context.Context, in *ConfigurationRequest, opts ...grpc.CallOption) (*PriceResponse, error) {
	out := dynamicpb.NewMessage(priceResponseDesc)
	if err := c.cc.Invoke(ctx, PricingService_PriceConfiguration_FullMethodName, in.message(), out, opts...); err != nil {
		return nil, err
	}
	return &PriceResponse{TotalPrice: out.Get(totalPriceField).String()}, nil
}

func (c *pricingServiceClient) ValidateConfiguration(ctx context.Context, in *ConfigurationRequest, opts ...grpc.CallOption) (*ValidationResponse, error) {
	out := dynamicpb.NewMessage(validationResponseDesc)
	if err := c.cc.Invoke(ctx, PricingService_ValidateConfiguration_FullMethodName, in.message(), out, opts...); err != nil {
		return nil, err
	}
	return &ValidationResponse{Valid: out.Get(validField).Bool()}, nil
}
