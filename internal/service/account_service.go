package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"admin-account/internal/domain"
	"admin-account/internal/email"
	"admin-account/internal/repository"
)

// RejectReason identifica por qué una operación fue rechazada sin ser un
// fallo del servidor.
type RejectReason string

const (
	ReasonUsernameTaken RejectReason = "username_taken"
	ReasonMobileTaken   RejectReason = "mobile_taken"
	ReasonEmailTaken    RejectReason = "email_taken"
	ReasonConflict      RejectReason = "conflict"
	ReasonWrongPassword RejectReason = "wrong_password"
	ReasonNotFound      RejectReason = "not_found"
)

// Outcome es el resultado de una operación sobre cuentas: aceptada con su
// cuenta resultante, o rechazada con un código de razón. Los fallos de
// persistencia se devuelven como error aparte.
type Outcome struct {
	Accepted bool            `json:"accepted"`
	Reason   RejectReason    `json:"reason,omitempty"`
	Message  string          `json:"message"`
	Account  *domain.Account `json:"account,omitempty"`
}

func accepted(message string, account *domain.Account) Outcome {
	return Outcome{Accepted: true, Message: message, Account: account}
}

func rejected(reason RejectReason, message string) Outcome {
	return Outcome{Reason: reason, Message: message}
}

var ErrAccountNotFound = errors.New("account not found")

// AccountService coordina reglas de negocio para cuentas.
type AccountService struct {
	logger          *zap.Logger
	accounts        repository.AccountRepository
	notifier        email.Sender
	hash            PasswordHasher
	verify          PasswordVerifier
	defaultPassword string
}

func NewAccountService(logger *zap.Logger, accounts repository.AccountRepository, notifier email.Sender, defaultPassword string) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		logger:          logger,
		accounts:        accounts,
		notifier:        notifier,
		hash:            BcryptHasher,
		verify:          BcryptVerifier,
		defaultPassword: defaultPassword,
	}
}

// WithCredentialFuncs reemplaza las funciones de hash y verificación de
// contraseñas. Pensado para pruebas o algoritmos alternativos.
func (s *AccountService) WithCredentialFuncs(hash PasswordHasher, verify PasswordVerifier) *AccountService {
	if hash != nil {
		s.hash = hash
	}
	if verify != nil {
		s.verify = verify
	}
	return s
}

type CreateAccountInput struct {
	Username string
	Email    string
	Mobile   string
	Status   domain.AccountStatus
	Platform domain.AccountPlatform
}

type UpdateAccountInput struct {
	Username string
	Email    string
	Mobile   string
	Status   domain.AccountStatus
	Platform domain.AccountPlatform
}

// CreateAccount verifica unicidad de username/email/mobile no vacíos y
// persiste la cuenta con la contraseña por defecto del sistema. Cualquier
// contraseña provista por el llamador se ignora.
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (Outcome, error) {
	if s.accounts == nil {
		return Outcome{}, errors.New("account service not configured")
	}

	username := strings.TrimSpace(input.Username)
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	mobile := strings.TrimSpace(input.Mobile)

	if username != "" || emailAddr != "" || mobile != "" {
		found, err := s.accounts.FindConflicting(ctx, username, emailAddr, mobile)
		if err == nil {
			return classifyConflict(found, username, emailAddr, mobile), nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return Outcome{}, err
		}
	}

	passwordHash, err := s.hash(s.defaultPassword)
	if err != nil {
		return Outcome{}, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		Username:  username,
		Email:     emailAddr,
		Mobile:    mobile,
		Password:  passwordHash,
		Status:    input.Status,
		Platform:  input.Platform,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		// La verificación y el insert no son atómicos: un insert concurrente
		// puede ganar la carrera y disparar el índice único.
		if reason, ok := uniqueViolationReason(err); ok {
			return rejected(reason, conflictMessage(reason)), nil
		}
		return Outcome{}, err
	}

	s.notifyCreated(ctx, created)
	return accepted("creation succeeded", &created), nil
}

// DestroyByID elimina la cuenta sin verificación previa de existencia.
func (s *AccountService) DestroyByID(ctx context.Context, id int64) (Outcome, error) {
	if s.accounts == nil {
		return Outcome{}, errors.New("account service not configured")
	}

	affected, err := s.accounts.DeleteByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if affected == 0 {
		return rejected(ReasonNotFound, "delete failed"), nil
	}
	return accepted("delete succeeded", nil), nil
}

// ModifyPasswordByID reemplaza la credencial tras verificar la contraseña
// anterior. Una cuenta inexistente se trata como contraseña incorrecta.
func (s *AccountService) ModifyPasswordByID(ctx context.Context, id int64, password, newPassword string) (Outcome, error) {
	if s.accounts == nil {
		return Outcome{}, errors.New("account service not configured")
	}

	stored, err := s.accounts.FetchPasswordHash(ctx, id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Outcome{}, err
	}
	if stored == "" || !s.verify(password, stored) {
		return rejected(ReasonWrongPassword, "old password incorrect"), nil
	}

	passwordHash, err := s.hash(newPassword)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.accounts.UpdatePassword(ctx, id, passwordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rejected(ReasonWrongPassword, "old password incorrect"), nil
		}
		return Outcome{}, err
	}
	return accepted("modification succeeded", nil), nil
}

// ModifyByID sobrescribe username/email/mobile/status/platform sin
// verificación de unicidad propia; los índices únicos del almacén son el
// único resguardo en esta operación.
func (s *AccountService) ModifyByID(ctx context.Context, id int64, input UpdateAccountInput) (Outcome, error) {
	if s.accounts == nil {
		return Outcome{}, errors.New("account service not configured")
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Outcome{}, ErrAccountNotFound
		}
		return Outcome{}, err
	}

	account.Username = strings.TrimSpace(input.Username)
	account.Email = strings.ToLower(strings.TrimSpace(input.Email))
	account.Mobile = strings.TrimSpace(input.Mobile)
	account.Status = input.Status
	account.Platform = input.Platform
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Save(ctx, account); err != nil {
		if reason, ok := uniqueViolationReason(err); ok {
			return rejected(reason, updateConflictMessage(reason)), nil
		}
		return Outcome{}, err
	}
	return accepted("modification succeeded", &account), nil
}

func (s *AccountService) notifyCreated(ctx context.Context, account domain.Account) {
	if s.notifier == nil || account.Email == "" {
		return
	}
	if err := s.notifier.SendAccountCreated(ctx, account.Email, account.Username); err != nil {
		s.logger.Warn("account created notice failed",
			zap.Error(err),
			zap.Int64("account_id", account.ID),
		)
	}
}

// classifyConflict reporta la clave alterna de la fila encontrada que
// coincide con la entrada, probando username, mobile y email en ese orden.
func classifyConflict(found domain.Account, username, emailAddr, mobile string) Outcome {
	switch {
	case username != "" && found.Username == username:
		return rejected(ReasonUsernameTaken, conflictMessage(ReasonUsernameTaken))
	case mobile != "" && found.Mobile == mobile:
		return rejected(ReasonMobileTaken, conflictMessage(ReasonMobileTaken))
	case emailAddr != "" && found.Email == emailAddr:
		return rejected(ReasonEmailTaken, conflictMessage(ReasonEmailTaken))
	default:
		return rejected(ReasonConflict, conflictMessage(ReasonConflict))
	}
}

func conflictMessage(reason RejectReason) string {
	switch reason {
	case ReasonUsernameTaken:
		return "creation failed, username already exists"
	case ReasonMobileTaken:
		return "creation failed, mobile already exists"
	case ReasonEmailTaken:
		return "creation failed, email already exists"
	default:
		return "creation failed"
	}
}

func updateConflictMessage(reason RejectReason) string {
	switch reason {
	case ReasonUsernameTaken:
		return "modification failed, username already exists"
	case ReasonMobileTaken:
		return "modification failed, mobile already exists"
	case ReasonEmailTaken:
		return "modification failed, email already exists"
	default:
		return "modification failed"
	}
}

// uniqueViolationReason traduce una violación de índice único de Postgres
// al código de rechazo correspondiente.
func uniqueViolationReason(err error) (RejectReason, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return "", false
	}
	switch pgErr.ConstraintName {
	case "accounts_username_key":
		return ReasonUsernameTaken, true
	case "accounts_email_key":
		return ReasonEmailTaken, true
	case "accounts_mobile_key":
		return ReasonMobileTaken, true
	default:
		return ReasonConflict, true
	}
}
