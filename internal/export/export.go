// Package export renders a domain.DailyReport as a downloadable document.
// It consumes the report structure verbatim and owns no business rules:
// whatever BuildReport returns is what lands in the file.
package export

import (
	"fmt"
	"time"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// Section titles and labels, matching the front end's language.
const (
	titlePrefix      = "RELATÓRIO DIÁRIO - PORTARIA"
	sectionVisitors  = "VISITANTES"
	sectionFleet     = "CONTROLE DE FROTA"
	sectionSchedules = "AGENDAMENTOS"
	sectionNotes     = "OBSERVAÇÕES DO DIA"
	labelPorter      = "Porteiro responsável:"
	noObservation    = "Nenhuma observação"
	inProgress       = "Em andamento"
	emptyCell        = "—"
)

var (
	visitorHeaders  = []string{"Nome", "Documento", "Entrada", "Saída", "Placa", "Empresa", "Observação"}
	fleetHeaders    = []string{"Motorista", "Veículo", "KM Saída", "KM Entrada", "Distância (KM)", "Status"}
	scheduleHeaders = []string{"Visitante", "Empresa", "Horário", "Status", "Notas"}
)

// visitorRow flattens one visitor into display cells.
func visitorRow(v domain.Visitor) []string {
	exit := inProgress
	if v.ExitTime != nil {
		exit = fmtTimestamp(*v.ExitTime)
	}
	return []string{v.Name, v.Document, fmtTimestamp(v.EntryTime), exit, v.VehiclePlate, v.Company, v.Observation}
}

// fleetRow flattens one trip into display cells, deriving distance and status.
func fleetRow(t domain.FleetTrip) []string {
	arrival, distance := emptyCell, emptyCell
	if t.ArrivalKm != nil {
		arrival = fmtKm(*t.ArrivalKm)
		distance = fmtKm(*t.Distance())
	}
	status := "Em viagem"
	if t.Status() == domain.TripStatusReturned {
		status = "Retornado"
	}
	return []string{t.DriverName, t.Vehicle, fmtKm(t.DepartureKm), arrival, distance, status}
}

// scheduleRow flattens one schedule into display cells.
func scheduleRow(s domain.Schedule) []string {
	status := "Pendente"
	if s.Status == domain.ScheduleStatusCompleted {
		status = "Concluído"
	}
	return []string{s.VisitorName, s.Company, s.VisitTime, status, s.Notes}
}

// observationText returns the saved observation or the placeholder.
func observationText(r domain.DailyReport) string {
	if r.Observation == "" {
		return noObservation
	}
	return r.Observation
}

// porterText returns the saved porter name or the placeholder.
func porterText(r domain.DailyReport) string {
	if r.PorterName == "" {
		return emptyCell
	}
	return r.PorterName
}

// fmtTimestamp renders an instant as "2006-01-02 15:04" in UTC, the same
// precision the report pages show.
func fmtTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// fmtKm renders an odometer value with one decimal place.
func fmtKm(km float64) string {
	return fmt.Sprintf("%.1f", km)
}
