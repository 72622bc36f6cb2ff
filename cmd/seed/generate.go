package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dataset is one generated workshop.
type Dataset struct {
	Technicians []models.User
	Vehicles    []models.Vehicle
	Inventory   []models.InventoryItem
	Jobs        []models.Job
	Invoices    []models.Invoice
}

type part struct {
	name     string
	category string
	price    float64
}

var (
	makes = map[string][]string{
		"Toyota":     {"Corolla", "Hilux", "RAV4", "Land Cruiser"},
		"Nissan":     {"X-Trail", "Navara", "Note"},
		"Honda":      {"Civic", "CR-V", "Fit"},
		"Ford":       {"Ranger", "Focus", "Transit"},
		"Mazda":      {"Demio", "CX-5"},
		"Volkswagen": {"Golf", "Polo", "Amarok"},
	}
	makeNames = []string{"Toyota", "Nissan", "Honda", "Ford", "Mazda", "Volkswagen"}

	technicianNames = []string{"Ana Reyes", "Kofi Mensah", "Liam Walsh", "Priya Nair", "Tomas Novak", "Wanjiru Kamau"}

	issues = []string{"Brakes", "Engine", "Suspension", "Electrical", "Oil service", "Transmission", "Cooling", "Tyres"}

	parts = []part{
		{"Oil filter", "filters", 12.5},
		{"Air filter", "filters", 18},
		{"Brake pads", "brakes", 45},
		{"Brake disc", "brakes", 80},
		{"Spark plug", "ignition", 9.75},
		{"Engine oil 5L", "fluids", 38},
		{"Coolant 1L", "fluids", 7.5},
		{"Shock absorber", "suspension", 95},
		{"Battery", "electrical", 120},
		{"Timing belt", "engine", 65},
	}

	jobTypes = []models.JobType{
		models.JobTypeService, models.JobTypeService, models.JobTypeRepair,
		models.JobTypeRepair, models.JobTypeServiceAndRepair, models.JobTypeTow, models.JobTypeComplaint,
	}

	paymentMethods = []string{"cash", "card", "transfer", "mobile_money"}
)

// generator builds a plausible workshop history ending at now.
type generator struct {
	rng        *rand.Rand
	workshopID string
	now        time.Time
	days       int
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (g *generator) pick(n int) int {
	return g.rng.Intn(n)
}

// Generate produces technicians, vehicles, inventory and jobCount jobs with
// their invoices spread over the last g.days days.
func (g *generator) Generate(jobCount int) Dataset {
	var ds Dataset

	for i, name := range technicianNames[:3+g.pick(len(technicianNames)-2)] {
		ds.Technicians = append(ds.Technicians, models.User{
			ID:         newID(),
			WorkshopID: g.workshopID,
			Name:       name,
			Email:      fmt.Sprintf("tech%d@%s.example", i+1, g.workshopID),
			Role:       models.RoleTechnician,
			IsActive:   true,
			CreatedAt:  g.now.AddDate(0, 0, -g.days-30),
		})
	}

	for i := 0; i < jobCount/2+1; i++ {
		brand := makeNames[g.pick(len(makeNames))]
		ds.Vehicles = append(ds.Vehicles, models.Vehicle{
			ID:           newID(),
			WorkshopID:   g.workshopID,
			CustomerID:   newID(),
			Make:         brand,
			Model:        makes[brand][g.pick(len(makes[brand]))],
			Year:         2008 + g.pick(17),
			Registration: fmt.Sprintf("K%c%c %03d%c", 'A'+g.pick(26), 'A'+g.pick(26), g.pick(1000), 'A'+g.pick(26)),
			CreatedAt:    g.now.AddDate(0, 0, -g.days-g.pick(365)),
		})
	}

	for _, p := range parts {
		price := p.price
		ds.Inventory = append(ds.Inventory, models.InventoryItem{
			ID:            newID(),
			WorkshopID:    g.workshopID,
			Name:          p.name,
			Category:      p.category,
			Quantity:      float64(g.pick(40)),
			MinStockLevel: 5,
			UnitPrice:     roundMoney(price * 0.6),
			SellingPrice:  price,
		})
	}

	for i := 0; i < jobCount; i++ {
		job := g.job(ds.Technicians, ds.Vehicles[g.pick(len(ds.Vehicles))])
		ds.Jobs = append(ds.Jobs, job)
		if inv, ok := g.invoice(job, ds.Technicians); ok {
			ds.Invoices = append(ds.Invoices, inv)
		}
	}
	return ds
}

func (g *generator) job(techs []models.User, vehicle models.Vehicle) models.Job {
	created := g.now.Add(-time.Duration(g.rng.Int63n(int64(g.days) * int64(24*time.Hour))))

	job := models.Job{
		ID:            newID(),
		WorkshopID:    g.workshopID,
		CustomerID:    vehicle.CustomerID,
		VehicleID:     vehicle.ID,
		Type:          jobTypes[g.pick(len(jobTypes))],
		Status:        models.JobStatusReceived,
		ServiceCharge: float64(40 + 10*g.pick(12)),
		CreatedAt:     created,
	}

	for n := g.pick(3); n > 0; n-- {
		job.Issues = append(job.Issues, issues[g.pick(len(issues))])
	}

	// Older records carry the single technician field only.
	switch roll := g.pick(10); {
	case roll < 2:
		job.AssignedTechnicianID = techs[g.pick(len(techs))].ID
	case roll < 4:
		first := g.pick(len(techs))
		second := (first + 1 + g.pick(len(techs)-1)) % len(techs)
		job.AssignedTechnicianIDs = []string{techs[first].ID, techs[second].ID}
	case roll < 9:
		job.AssignedTechnicianIDs = []string{techs[g.pick(len(techs))].ID}
	}

	for n := g.pick(4); n > 0; n-- {
		p := parts[g.pick(len(parts))]
		job.PartsUsed = append(job.PartsUsed, models.PartUsage{
			PartName:  p.name,
			Quantity:  float64(1 + g.pick(4)),
			UnitPrice: p.price,
		})
	}

	age := g.now.Sub(created)
	switch {
	case age > 3*24*time.Hour && g.pick(10) < 8:
		job.Status = models.JobStatusCompleted
		completed := created.Add(time.Duration(g.rng.Int63n(int64(age))))
		job.CompletedAt = &completed
	case g.pick(20) == 0:
		job.Status = models.JobStatusCancelled
	default:
		job.Status = []models.JobStatus{models.JobStatusReceived, models.JobStatusDiagnosed, models.JobStatusRepairing}[g.pick(3)]
	}
	return job
}

func (g *generator) invoice(job models.Job, techs []models.User) (models.Invoice, bool) {
	if job.Status == models.JobStatusCancelled || job.Status == models.JobStatusReceived {
		return models.Invoice{}, false
	}

	inv := models.Invoice{
		ID:         newID(),
		WorkshopID: g.workshopID,
		JobID:      job.ID,
		Status:     models.InvoiceStatusApproved,
		CreatedAt:  job.CreatedAt.Add(time.Hour),
	}
	inv.Items = append(inv.Items, models.InvoiceItem{
		Description: "LABOUR",
		Quantity:    1,
		UnitPrice:   job.ServiceCharge,
		Total:       job.ServiceCharge,
	})
	for _, pu := range job.PartsUsed {
		inv.Items = append(inv.Items, models.InvoiceItem{
			Description: pu.PartName,
			Quantity:    pu.Quantity,
			UnitPrice:   pu.UnitPrice,
			Total:       roundMoney(pu.Quantity * pu.UnitPrice),
		})
	}
	for _, item := range inv.Items {
		inv.Total += item.Total
	}
	inv.Total = roundMoney(inv.Total)

	if job.CompletedAt == nil {
		return inv, true
	}

	// Settle in one or two payments after completion, never in the future.
	remaining := inv.Total
	paidAt := *job.CompletedAt
	for n := 1 + g.pick(2); n > 0 && remaining > 0; n-- {
		amount := remaining
		if n > 1 {
			amount = roundMoney(remaining * 0.5)
		}
		paidAt = paidAt.Add(time.Duration(g.pick(72)) * time.Hour)
		if paidAt.After(g.now) {
			paidAt = g.now
		}
		recorder := techs[g.pick(len(techs))]
		inv.PaymentHistory = append(inv.PaymentHistory, models.Payment{
			Amount:       amount,
			Date:         paidAt,
			Method:       paymentMethods[g.pick(len(paymentMethods))],
			RecordedByID: recorder.ID,
			RecordedBy:   recorder.Name,
		})
		remaining = roundMoney(remaining - amount)
	}
	if remaining <= 0 {
		inv.Status = models.InvoiceStatusSettled
	}
	return inv, true
}
