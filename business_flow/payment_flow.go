// Package businessflow contains the core business logic and use cases for payment workflows
package businessflow

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/app/services"
	"github.com/sajtem/sajtem-backend/config"
	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/repository"
	"github.com/sajtem/sajtem-backend/utils"
	"gorm.io/gorm"
)

// PaymentFlow defines payment intent and webhook operations
type PaymentFlow interface {
	CreatePixPayment(ctx context.Context, req *dto.CreatePixPaymentRequest, metadata *ClientMetadata) (*dto.PixPaymentResponse, error)
	CreateCardPayment(ctx context.Context, req *dto.CreateCardPaymentRequest, metadata *ClientMetadata) (*dto.CardPaymentResponse, error)
	HandleWebhook(ctx context.Context, req *dto.PaymentWebhookRequest, metadata *ClientMetadata) error
}

// PaymentFlowImpl implements PaymentFlow
type PaymentFlowImpl struct {
	planoRepo     repository.PlanoRepository
	pagamentoRepo repository.PagamentoRepository
	gateway       services.PaymentGateway
	mpCfg         config.MercadoPagoConfig
	db            *gorm.DB
}

func NewPaymentFlow(
	planoRepo repository.PlanoRepository,
	pagamentoRepo repository.PagamentoRepository,
	gateway services.PaymentGateway,
	mpCfg config.MercadoPagoConfig,
	db *gorm.DB,
) PaymentFlow {
	return &PaymentFlowImpl{
		planoRepo:     planoRepo,
		pagamentoRepo: pagamentoRepo,
		gateway:       gateway,
		mpCfg:         mpCfg,
		db:            db,
	}
}

// CreatePixPayment creates a Pix payment intent at the gateway and returns
// the QR payload. Nothing is persisted here; the webhook records the
// payment once the gateway reports it.
func (f *PaymentFlowImpl) CreatePixPayment(ctx context.Context, req *dto.CreatePixPaymentRequest, metadata *ClientMetadata) (*dto.PixPaymentResponse, error) {
	// Plan lookup comes first so an unknown plan answers 404 even on a
	// deployment with no gateway token configured
	plano, err := f.loadPlano(ctx, req.PlanoID)
	if err != nil {
		return nil, err
	}
	if f.mpCfg.AccessToken == "" {
		return nil, ErrMissingGatewayToken
	}

	gwReq := &services.GatewayPaymentRequest{
		TransactionAmount: plano.PrecoMensal,
		Description:       fmt.Sprintf("Assinatura %s - Saj Tem", plano.Nome),
		PaymentMethodID:   "pix",
		Payer:             toGatewayPayer(req.UserInfo),
	}

	// Each call gets a fresh key: retrying a failed Pix intent creates a
	// new payment at the gateway rather than replaying the old one.
	resp, err := f.gateway.CreatePayment(ctx, uuid.New().String(), gwReq)
	if err != nil {
		if ge, ok := services.IsGatewayError(err); ok {
			return nil, NewBusinessError("PAYMENT_GATEWAY_REJECTED", "Payment gateway rejected the request", ge)
		}
		return nil, NewBusinessError("PAYMENT_GATEWAY_UNREACHABLE", "Failed to reach payment gateway", err)
	}

	out := &dto.PixPaymentResponse{
		ID:                resp.ID,
		Status:            resp.Status,
		TransactionAmount: resp.TransactionAmount,
		Description:       resp.Description,
	}
	if resp.PointOfInteraction != nil {
		out.QRCode = resp.PointOfInteraction.TransactionData.QRCode
		out.QRCodeBase64 = resp.PointOfInteraction.TransactionData.QRCodeBase64
		out.TicketURL = resp.PointOfInteraction.TransactionData.TicketURL
	}
	return out, nil
}

// CreateCardPayment charges a tokenized card at the gateway. The
// idempotency key is derived from the plan and wall-clock millisecond, so
// a client retry within the same millisecond replays instead of
// double-charging.
func (f *PaymentFlowImpl) CreateCardPayment(ctx context.Context, req *dto.CreateCardPaymentRequest, metadata *ClientMetadata) (*dto.CardPaymentResponse, error) {
	plano, err := f.loadPlano(ctx, req.PlanoID)
	if err != nil {
		return nil, err
	}
	if f.mpCfg.AccessToken == "" {
		return nil, ErrMissingGatewayToken
	}

	gwReq := &services.GatewayPaymentRequest{
		TransactionAmount: plano.PrecoMensal,
		Description:       fmt.Sprintf("Assinatura %s - Saj Tem", plano.Nome),
		Token:             req.CardToken,
		Installments:      req.Installments,
		Payer:             toGatewayPayer(req.UserInfo),
	}

	idempotencyKey := fmt.Sprintf("%d-%d", req.PlanoID, utils.UTCNow().UnixMilli())
	resp, err := f.gateway.CreatePayment(ctx, idempotencyKey, gwReq)
	if err != nil {
		if ge, ok := services.IsGatewayError(err); ok {
			return nil, NewBusinessError("PAYMENT_GATEWAY_REJECTED", "Payment gateway rejected the request", ge)
		}
		return nil, NewBusinessError("PAYMENT_GATEWAY_UNREACHABLE", "Failed to reach payment gateway", err)
	}

	return &dto.CardPaymentResponse{
		PaymentID:         resp.ID,
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		TransactionAmount: resp.TransactionAmount,
		Installments:      resp.Installments,
		PaymentMethodID:   resp.PaymentMethodID,
		PaymentTypeID:     resp.PaymentTypeID,
	}, nil
}

// HandleWebhook fetches the notified payment from the gateway and upserts
// the local record keyed by the gateway payment id. Redeliveries update
// the existing row. Notifications that are not about payments are
// acknowledged and ignored.
func (f *PaymentFlowImpl) HandleWebhook(ctx context.Context, req *dto.PaymentWebhookRequest, metadata *ClientMetadata) error {
	if req.Type != "payment" {
		return nil
	}
	if f.mpCfg.AccessToken == "" {
		return ErrMissingGatewayToken
	}

	gwResp, err := f.gateway.GetPayment(ctx, req.Data.ID)
	if err != nil {
		if ge, ok := services.IsGatewayError(err); ok {
			return NewBusinessError("PAYMENT_GATEWAY_REJECTED", "Payment gateway rejected the lookup", ge)
		}
		return NewBusinessError("PAYMENT_GATEWAY_UNREACHABLE", "Failed to fetch payment from gateway", err)
	}

	gatewayPaymentID := strconv.FormatInt(gwResp.ID, 10)

	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		existing, err := f.pagamentoRepo.ByGatewayPaymentID(txCtx, gatewayPaymentID)
		if err != nil {
			return err
		}

		if existing != nil {
			// Redeliveries of a status that can no longer change are no-ops
			if existing.Status == gwResp.Status && existing.IsFinal() {
				return nil
			}
			existing.Status = gwResp.Status
			existing.StatusDetail = optionalString(gwResp.StatusDetail)
			existing.UpdatedAt = utils.UTCNow()
			return f.pagamentoRepo.Update(txCtx, existing)
		}

		row := &models.Pagamento{
			GatewayPaymentID: gatewayPaymentID,
			Status:           gwResp.Status,
			StatusDetail:     optionalString(gwResp.StatusDetail),
			Amount:           gwResp.TransactionAmount,
			PaymentMethodID:  optionalString(gwResp.PaymentMethodID),
			PaymentTypeID:    optionalString(gwResp.PaymentTypeID),
			CreatedAt:        utils.UTCNow(),
			UpdatedAt:        utils.UTCNow(),
		}
		if gwResp.Payer != nil {
			row.PayerEmail = optionalString(gwResp.Payer.Email)
		}
		return f.pagamentoRepo.Save(txCtx, row)
	})
}

func (f *PaymentFlowImpl) loadPlano(ctx context.Context, planoID uint) (*models.Plano, error) {
	plano, err := f.planoRepo.ByID(ctx, planoID)
	if err != nil {
		return nil, NewBusinessError("PLAN_LOOKUP_FAILED", "Failed to lookup plan", err)
	}
	if plano == nil {
		return nil, ErrPlanNotFound
	}
	if plano.Ativo != nil && !*plano.Ativo {
		return nil, ErrPlanInactive
	}
	return plano, nil
}

func toGatewayPayer(info dto.UserInfoDTO) services.GatewayPayer {
	return services.GatewayPayer{
		Email:     info.Email,
		FirstName: info.Nome,
		Identification: services.GatewayIdentification{
			Type:   info.TipoDocumento,
			Number: info.Documento,
		},
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
