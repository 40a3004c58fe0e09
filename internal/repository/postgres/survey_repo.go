package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Thaihung204/CreditNoVa/internal/domain/survey"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const surveyColumns = `
id, full_name, date_of_birth, gender, identity_number, marital_status,
number_of_dependents, education_level, address, occupation, company_name,
company_type, years_at_current_job, monthly_income, salary_payment_method,
salary_slip_image, utility_bill_image, own_house_or_land,
own_car_or_valuable_vehicle, has_savings_account, life_insurance_value,
investments, had_previous_loans, loan_institution, loan_limit,
current_outstanding_debt, loan_term, phone_number, email, facebook,
credit_score, created_at, updated_at`

type SurveyRepository struct {
	pool *pgxpool.Pool
}

func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{pool: pool}
}

func scanSurvey(row pgx.Row) (*survey.Entity, error) {
	out := &survey.Entity{}
	err := row.Scan(
		&out.ID, &out.FullName, &out.DateOfBirth, &out.Gender, &out.IdentityNumber, &out.MaritalStatus,
		&out.NumberOfDependents, &out.EducationLevel, &out.Address, &out.Occupation, &out.CompanyName,
		&out.CompanyType, &out.YearsAtCurrentJob, &out.MonthlyIncome, &out.SalaryPaymentMethod,
		&out.SalarySlipImage, &out.UtilityBillImage, &out.OwnHouseOrLand,
		&out.OwnCarOrValuableVehicle, &out.HasSavingsAccount, &out.LifeInsuranceValue,
		&out.Investments, &out.HadPreviousLoans, &out.LoanInstitution, &out.LoanLimit,
		&out.CurrentOutstandingDebt, &out.LoanTerm, &out.PhoneNumber, &out.Email, &out.Facebook,
		&out.CreditScore, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, survey.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *SurveyRepository) Create(ctx context.Context, in survey.CreateInput) (*survey.Entity, error) {
	q := `
INSERT INTO credit_surveys (
  full_name, date_of_birth, gender, identity_number, marital_status,
  number_of_dependents, education_level, address, occupation, company_name,
  company_type, years_at_current_job, monthly_income, salary_payment_method,
  salary_slip_image, utility_bill_image, own_house_or_land,
  own_car_or_valuable_vehicle, has_savings_account, life_insurance_value,
  investments, had_previous_loans, loan_institution, loan_limit,
  current_outstanding_debt, loan_term, phone_number, email, facebook,
  credit_score
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
RETURNING` + surveyColumns

	return scanSurvey(r.pool.QueryRow(ctx, q,
		in.FullName, in.DateOfBirth, in.Gender, in.IdentityNumber, in.MaritalStatus,
		in.NumberOfDependents, in.EducationLevel, in.Address, in.Occupation, in.CompanyName,
		in.CompanyType, in.YearsAtCurrentJob, in.MonthlyIncome, in.SalaryPaymentMethod,
		in.SalarySlipImage, in.UtilityBillImage, in.OwnHouseOrLand,
		in.OwnCarOrValuableVehicle, in.HasSavingsAccount, in.LifeInsuranceValue,
		in.Investments, in.HadPreviousLoans, in.LoanInstitution, in.LoanLimit,
		in.CurrentOutstandingDebt, in.LoanTerm, in.PhoneNumber, in.Email, in.Facebook,
		in.CreditScore,
	))
}

func (r *SurveyRepository) GetByID(ctx context.Context, id string) (*survey.Entity, error) {
	q := `SELECT` + surveyColumns + ` FROM credit_surveys WHERE id = $1`
	return scanSurvey(r.pool.QueryRow(ctx, q, id))
}

func (r *SurveyRepository) List(ctx context.Context) ([]survey.Entity, error) {
	q := `SELECT` + surveyColumns + ` FROM credit_surveys ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]survey.Entity, 0)
	for rows.Next() {
		item, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SurveyRepository) ApplyPatch(ctx context.Context, id string, p survey.Patch) (*survey.Entity, error) {
	builder := strings.Builder{}
	builder.WriteString("UPDATE credit_surveys SET updated_at = NOW()")

	args := []any{id}
	argPos := 2
	set := func(column string, value any) {
		builder.WriteString(", ")
		builder.WriteString(column)
		builder.WriteString(" = $")
		builder.WriteString(strconv.Itoa(argPos))
		args = append(args, value)
		argPos++
	}

	if p.FullName != nil {
		set("full_name", *p.FullName)
	}
	if p.DateOfBirth != nil {
		set("date_of_birth", *p.DateOfBirth)
	}
	if p.Gender != nil {
		set("gender", *p.Gender)
	}
	if p.IdentityNumber != nil {
		set("identity_number", *p.IdentityNumber)
	}
	if p.MaritalStatus != nil {
		set("marital_status", *p.MaritalStatus)
	}
	if p.NumberOfDependents != nil {
		set("number_of_dependents", *p.NumberOfDependents)
	}
	if p.EducationLevel != nil {
		set("education_level", *p.EducationLevel)
	}
	if p.Address != nil {
		set("address", *p.Address)
	}
	if p.Occupation != nil {
		set("occupation", *p.Occupation)
	}
	if p.CompanyName != nil {
		set("company_name", *p.CompanyName)
	}
	if p.CompanyType != nil {
		set("company_type", *p.CompanyType)
	}
	if p.YearsAtCurrentJob != nil {
		set("years_at_current_job", *p.YearsAtCurrentJob)
	}
	if p.MonthlyIncome != nil {
		set("monthly_income", *p.MonthlyIncome)
	}
	if p.SalaryPaymentMethod != nil {
		set("salary_payment_method", *p.SalaryPaymentMethod)
	}
	if p.OwnHouseOrLand != nil {
		set("own_house_or_land", *p.OwnHouseOrLand)
	}
	if p.OwnCarOrValuableVehicle != nil {
		set("own_car_or_valuable_vehicle", *p.OwnCarOrValuableVehicle)
	}
	if p.HasSavingsAccount != nil {
		set("has_savings_account", *p.HasSavingsAccount)
	}
	if p.LifeInsuranceValue != nil {
		set("life_insurance_value", *p.LifeInsuranceValue)
	}
	if p.Investments != nil {
		set("investments", *p.Investments)
	}
	if p.HadPreviousLoans != nil {
		set("had_previous_loans", *p.HadPreviousLoans)
	}
	if p.LoanInstitution != nil {
		set("loan_institution", *p.LoanInstitution)
	}
	if p.LoanLimit != nil {
		set("loan_limit", *p.LoanLimit)
	}
	if p.CurrentOutstandingDebt != nil {
		set("current_outstanding_debt", *p.CurrentOutstandingDebt)
	}
	if p.LoanTerm != nil {
		set("loan_term", *p.LoanTerm)
	}
	if p.PhoneNumber != nil {
		set("phone_number", *p.PhoneNumber)
	}
	if p.Email != nil {
		set("email", *p.Email)
	}
	if p.Facebook != nil {
		set("facebook", *p.Facebook)
	}

	builder.WriteString(" WHERE id = $1 RETURNING")
	builder.WriteString(surveyColumns)

	return scanSurvey(r.pool.QueryRow(ctx, builder.String(), args...))
}

func (r *SurveyRepository) ReplaceSalarySlip(ctx context.Context, id string, image []byte) (*survey.Entity, error) {
	q := `UPDATE credit_surveys SET salary_slip_image = $2, updated_at = NOW() WHERE id = $1 RETURNING` + surveyColumns
	return scanSurvey(r.pool.QueryRow(ctx, q, id, image))
}

func (r *SurveyRepository) ReplaceUtilityBill(ctx context.Context, id string, image []byte) (*survey.Entity, error) {
	q := `UPDATE credit_surveys SET utility_bill_image = $2, updated_at = NOW() WHERE id = $1 RETURNING` + surveyColumns
	return scanSurvey(r.pool.QueryRow(ctx, q, id, image))
}

func (r *SurveyRepository) UpdateScore(ctx context.Context, id string, score int32) (*survey.Entity, error) {
	q := `UPDATE credit_surveys SET credit_score = $2, updated_at = NOW() WHERE id = $1 RETURNING` + surveyColumns
	return scanSurvey(r.pool.QueryRow(ctx, q, id, score))
}

func (r *SurveyRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_surveys WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SurveyRepository) Stats(ctx context.Context) (*survey.Stats, error) {
	out := &survey.Stats{
		ScoreBands: []survey.ScoreBand{
			{Label: "300-549"},
			{Label: "550-699"},
			{Label: "700-850"},
		},
	}

	q := `
SELECT
  COUNT(*)::bigint AS total_surveys,
  COALESCE(AVG(credit_score), 0)::float8 AS average_score,
  COUNT(*) FILTER (WHERE credit_score BETWEEN 300 AND 549)::bigint AS band1,
  COUNT(*) FILTER (WHERE credit_score BETWEEN 550 AND 699)::bigint AS band2,
  COUNT(*) FILTER (WHERE credit_score BETWEEN 700 AND 850)::bigint AS band3
FROM credit_surveys
`
	err := r.pool.QueryRow(ctx, q).Scan(
		&out.TotalSurveys,
		&out.AverageScore,
		&out.ScoreBands[0].Count,
		&out.ScoreBands[1].Count,
		&out.ScoreBands[2].Count,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
