package gym

import (
	"context"
	"strings"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type BranchService interface {
	Create(ctx context.Context, accountID, userID string, in dto.BranchCreate) (*repository.Branch, error)
	List(ctx context.Context, accountID string) ([]repository.Branch, error)
	Get(ctx context.Context, accountID, id string) (*repository.Branch, error)
	Update(ctx context.Context, accountID, id string, in dto.BranchUpdate) (*repository.Branch, error)
	// Delete no borra members ni trainers de la branch.
	Delete(ctx context.Context, accountID, id string) error
}

type branchService struct{ d *Deps }

func (s *branchService) Create(ctx context.Context, accountID, userID string, in dto.BranchCreate) (*repository.Branch, error) {
	email := strings.ToLower(trim(in.SpocEmail))
	if err := conflictOn("spoc_email")(s.d.Store.Branches().ExistsSpocEmail(ctx, accountID, email, "")); err != nil {
		return nil, err
	}
	b, err := s.d.Store.Branches().Create(ctx, repository.Branch{
		AccountID:     accountID,
		UserID:        userID,
		Name:          trim(in.Name),
		StreetAddress: trim(in.StreetAddress),
		City:          trim(in.City),
		Zipcode:       trim(in.Zipcode),
		Area:          trim(in.Area),
		SpocName:      trim(in.SpocName),
		SpocEmail:     email,
		SpocContact:   trim(in.SpocContact),
		Status:        statusOr(in.Status),
	})
	if err != nil {
		return nil, err
	}
	svcLog(ctx, "gym.branches", "Create").Info("branch created", logger.BranchID(b.ID))
	return b, nil
}

func (s *branchService) List(ctx context.Context, accountID string) ([]repository.Branch, error) {
	return s.d.Store.Branches().List(ctx, accountID)
}

func (s *branchService) Get(ctx context.Context, accountID, id string) (*repository.Branch, error) {
	return s.d.Store.Branches().GetByID(ctx, accountID, id)
}

func (s *branchService) Update(ctx context.Context, accountID, id string, in dto.BranchUpdate) (*repository.Branch, error) {
	b, err := s.d.Store.Branches().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	setStr(&b.Name, in.Name)
	setStr(&b.StreetAddress, in.StreetAddress)
	setStr(&b.City, in.City)
	setStr(&b.Zipcode, in.Zipcode)
	setStr(&b.Area, in.Area)
	setStr(&b.SpocName, in.SpocName)
	setStr(&b.SpocContact, in.SpocContact)
	if in.SpocEmail != nil {
		email := strings.ToLower(trim(*in.SpocEmail))
		if email != b.SpocEmail {
			if err := conflictOn("spoc_email")(s.d.Store.Branches().ExistsSpocEmail(ctx, accountID, email, b.ID)); err != nil {
				return nil, err
			}
		}
		b.SpocEmail = email
	}
	if in.Status != nil {
		b.Status = repository.Status(*in.Status)
	}
	return s.d.Store.Branches().Update(ctx, accountID, *b)
}

func (s *branchService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Branches().Delete(ctx, accountID, id)
}

type TrainerService interface {
	Create(ctx context.Context, accountID, userID string, in dto.TrainerCreate) (*repository.Trainer, error)
	List(ctx context.Context, accountID string) ([]repository.Trainer, error)
	Get(ctx context.Context, accountID, id string) (*repository.Trainer, error)
	Update(ctx context.Context, accountID, id string, in dto.TrainerUpdate) (*repository.Trainer, error)
	Delete(ctx context.Context, accountID, id string) error
}

type trainerService struct{ d *Deps }

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = trim(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *trainerService) Create(ctx context.Context, accountID, userID string, in dto.TrainerCreate) (*repository.Trainer, error) {
	if _, err := s.d.Store.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
		return nil, notFound(err, "branch")
	}
	email := strings.ToLower(trim(in.Email))
	phone := trim(in.PhoneNumber)
	if err := conflictOn("email or phone_number")(s.d.Store.Trainers().ExistsContact(ctx, accountID, email, phone, "")); err != nil {
		return nil, err
	}
	t, err := s.d.Store.Trainers().Create(ctx, repository.Trainer{
		AccountID:      accountID,
		UserID:         userID,
		BranchID:       in.BranchID,
		Name:           trim(in.Name),
		DOB:            in.DOB.TimePtr(),
		BloodGroup:     in.BloodGroup,
		Gender:         repository.Gender(in.Gender),
		PhoneNumber:    phone,
		Email:          email,
		Specialization: cleanList(in.Specialization),
		Height:         in.Height,
		Weight:         in.Weight,
		Status:         statusOr(in.Status),
	})
	if err != nil {
		return nil, err
	}
	svcLog(ctx, "gym.trainers", "Create").Info("trainer created", logger.TrainerID(t.ID), logger.BranchID(t.BranchID))
	return t, nil
}

func (s *trainerService) List(ctx context.Context, accountID string) ([]repository.Trainer, error) {
	return s.d.Store.Trainers().List(ctx, accountID)
}

func (s *trainerService) Get(ctx context.Context, accountID, id string) (*repository.Trainer, error) {
	return s.d.Store.Trainers().GetByID(ctx, accountID, id)
}

func (s *trainerService) Update(ctx context.Context, accountID, id string, in dto.TrainerUpdate) (*repository.Trainer, error) {
	t, err := s.d.Store.Trainers().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if in.BranchID != nil && *in.BranchID != t.BranchID {
		if _, err := s.d.Store.Branches().GetByID(ctx, accountID, *in.BranchID); err != nil {
			return nil, notFound(err, "branch")
		}
		t.BranchID = *in.BranchID
	}
	oldEmail, oldPhone := t.Email, t.PhoneNumber
	if in.Email != nil {
		t.Email = strings.ToLower(trim(*in.Email))
	}
	setStr(&t.PhoneNumber, in.PhoneNumber)
	if t.Email != oldEmail || t.PhoneNumber != oldPhone {
		if err := conflictOn("email or phone_number")(s.d.Store.Trainers().ExistsContact(ctx, accountID, t.Email, t.PhoneNumber, t.ID)); err != nil {
			return nil, err
		}
	}
	setStr(&t.Name, in.Name)
	if in.Specialization != nil {
		t.Specialization = cleanList(*in.Specialization)
	}
	if in.DOB != nil {
		t.DOB = in.DOB.TimePtr()
	}
	if in.BloodGroup != nil {
		t.BloodGroup = *in.BloodGroup
	}
	if in.Gender != nil {
		t.Gender = repository.Gender(*in.Gender)
	}
	if in.Height != nil {
		t.Height = in.Height
	}
	if in.Weight != nil {
		t.Weight = in.Weight
	}
	if in.Status != nil {
		t.Status = repository.Status(*in.Status)
	}
	return s.d.Store.Trainers().Update(ctx, accountID, *t)
}

func (s *trainerService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Trainers().Delete(ctx, accountID, id)
}

type MemberService interface {
	Create(ctx context.Context, accountID, userID string, in dto.MemberCreate) (*repository.Member, error)
	List(ctx context.Context, accountID string) ([]repository.Member, error)
	Get(ctx context.Context, accountID, id string) (*repository.Member, error)
	Update(ctx context.Context, accountID, id string, in dto.MemberUpdate) (*repository.Member, error)
	Delete(ctx context.Context, accountID, id string) error
}

type memberService struct{ d *Deps }

func (s *memberService) Create(ctx context.Context, accountID, userID string, in dto.MemberCreate) (*repository.Member, error) {
	if _, err := s.d.Store.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
		return nil, notFound(err, "branch")
	}
	phone := trim(in.PhoneNumber)
	if err := conflictOn("phone_number")(s.d.Store.Members().ExistsPhone(ctx, accountID, phone, "")); err != nil {
		return nil, err
	}
	m, err := s.d.Store.Members().Create(ctx, repository.Member{
		AccountID:   accountID,
		UserID:      userID,
		BranchID:    in.BranchID,
		Name:        trim(in.Name),
		PhoneNumber: phone,
		BloodGroup:  in.BloodGroup,
		Gender:      repository.Gender(in.Gender),
		DOB:         in.DOB.Time,
		Address:     trim(in.Address),
		Street:      trim(in.Street),
		Area:        trim(in.Area),
		Zipcode:     trim(in.Zipcode),
		Height:      in.Height,
		Weight:      in.Weight,
		Status:      statusOr(in.Status),
	})
	if err != nil {
		return nil, err
	}
	svcLog(ctx, "gym.members", "Create").Info("member created", logger.MemberID(m.ID), logger.BranchID(m.BranchID))
	return m, nil
}

func (s *memberService) List(ctx context.Context, accountID string) ([]repository.Member, error) {
	return s.d.Store.Members().List(ctx, accountID)
}

func (s *memberService) Get(ctx context.Context, accountID, id string) (*repository.Member, error) {
	return s.d.Store.Members().GetByID(ctx, accountID, id)
}

// Update no toca los reportes existentes: el género de cada reporte es una
// copia tomada al crearlo.
func (s *memberService) Update(ctx context.Context, accountID, id string, in dto.MemberUpdate) (*repository.Member, error) {
	m, err := s.d.Store.Members().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if in.BranchID != nil && *in.BranchID != m.BranchID {
		if _, err := s.d.Store.Branches().GetByID(ctx, accountID, *in.BranchID); err != nil {
			return nil, notFound(err, "branch")
		}
		m.BranchID = *in.BranchID
	}
	if in.PhoneNumber != nil {
		phone := trim(*in.PhoneNumber)
		if phone != m.PhoneNumber {
			if err := conflictOn("phone_number")(s.d.Store.Members().ExistsPhone(ctx, accountID, phone, m.ID)); err != nil {
				return nil, err
			}
		}
		m.PhoneNumber = phone
	}
	setStr(&m.Name, in.Name)
	setStr(&m.Address, in.Address)
	setStr(&m.Street, in.Street)
	setStr(&m.Area, in.Area)
	setStr(&m.Zipcode, in.Zipcode)
	if in.DOB != nil {
		m.DOB = in.DOB.Time
	}
	if in.BloodGroup != nil {
		m.BloodGroup = *in.BloodGroup
	}
	if in.Gender != nil {
		m.Gender = repository.Gender(*in.Gender)
	}
	if in.Height != nil {
		m.Height = in.Height
	}
	if in.Weight != nil {
		m.Weight = in.Weight
	}
	if in.Status != nil {
		m.Status = repository.Status(*in.Status)
	}
	return s.d.Store.Members().Update(ctx, accountID, *m)
}

func (s *memberService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Members().Delete(ctx, accountID, id)
}
