package domain

import (
	"strconv"
	"strings"
	"time"
)

// ExportMappingKey is the admin_settings key holding the DataGouv mapping.
const ExportMappingKey = "datagouv_mapping"

// SourceStatic marks a column filled with a fixed literal instead of a
// data source.
const SourceStatic = "static"

// FieldMapping binds one DataGouv column to a data source or, when Source
// is "static", to StaticValue. The whole mapping is persisted as a single
// configuration record and must round-trip without loss.
type FieldMapping struct {
	Source      string `json:"source"`
	StaticValue string `json:"staticValue"`
}

// ExportMapping maps DataGouv field keys to their configured source.
type ExportMapping map[string]FieldMapping

// ExportField is one fixed column of the DataGouv CSV.
type ExportField struct {
	Field string
	Label string
}

// DataGouvFields is the fixed, ordered column set of the export. Labels are
// the exact CSV headers expected by the DataGouv template.
var DataGouvFields = []ExportField{
	{"age", "Age"},
	{"geo", "Geo"},
	{"jour", "Jour"},
	{"slug", "slug"},
	{"titre", "Titre"},
	{"ville", "Ville"},
	{"etat", "Etat"},
	{"adresse", "Adresse"},
	{"timings", "timings"},
	{"latitude", "Latitude"},
	{"longitude", "Longitude"},
	{"date_range", "dateRange"},
	{"code_insee", "Code Insee"},
	{"lieu_id", "ID du lieu"},
	{"image_full", "Image full"},
	{"last_timing", "lastTiming"},
	{"next_timing", "nextTiming"},
	{"code_postal", "Code postal"},
	{"nom_lieu", "Nom du lieu"},
	{"first_timing", "firstTiming"},
	{"departement", "Departement"},
	{"organisateur", "Organisateur"},
	{"image_credits", "imageCredits"},
	{"registration", "registration"},
	{"image_base", "Image de base"},
	{"image_fichier", "Image fichier"},
	{"accessibilite", "Accessibilite"},
	{"event_id", "ID evenement"},
	{"image_vignette", "Image vignette"},
	{"publics_vises", "Publics vises"},
	{"accessibilite_alt", "Accessibilite.1"},
	{"site_web_lieu", "Site web du lieu"},
	{"online_access_link", "onlineAccessLink"},
	{"date_creation", "Date de creation"},
	{"description_courte", "Description courte"},
	{"type_evenement", "Type d'evenement"},
	{"telephone_lieu", "Telephone (lieu)"},
	{"conditions_acces", "Conditions d'acces"},
	{"mode_participation", "Mode de participation"},
	{"derniere_mise_a_jour", "Derniere mise a jour"},
	{"activites_industrielles", "Activites industrielles"},
	{"participants_attendus", "nombre-de-participants-attendus"},
	{"profil_organisateur", "Profil de l'organisateur de l'evenement"},
}

// ExportRow is one slot joined with its company, gallery and booking
// statistics, ready for source resolution.
type ExportRow struct {
	Slot    *TimeSlot
	Company *Company
	Photos  []*CompanyPhoto
	Stats   SlotBookingStats
}

// EscapeCSV applies the DataGouv escaping rule: fields containing a quote,
// the semicolon separator or a line break are wrapped in quotes with
// internal quotes doubled.
func EscapeCSV(text string) string {
	if strings.ContainsAny(text, "\";\n\r") {
		return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
	}
	return text
}

var frenchDays = [...]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatTime(t time.Time) string {
	return t.Format("15:04")
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// ResolveSource extracts the value of a non-static data source from a row.
// Unknown sources and the empty source resolve to "".
func ResolveSource(source string, row ExportRow) string {
	if source == "" || source == SourceStatic {
		return ""
	}

	company := row.Company
	slot := row.Slot

	switch source {
	case "company.name":
		if company == nil {
			return ""
		}
		return company.Name
	case "company.description":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.Description }))
	case "company.address":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.Address }))
	case "company.city":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.City }))
	case "company.postal_code":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.PostalCode }))
	case "company.latitude":
		if company == nil {
			return ""
		}
		return formatFloat(company.Latitude)
	case "company.longitude":
		if company == nil {
			return ""
		}
		return formatFloat(company.Longitude)
	case "company.geo":
		if company == nil || company.Latitude == nil || company.Longitude == nil {
			return ""
		}
		return formatFloat(company.Latitude) + "," + formatFloat(company.Longitude)
	case "company.themes":
		if company == nil {
			return ""
		}
		return strings.Join(company.Themes, ", ")
	case "company.logo_url":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.LogoURL }))
	case "company.banner_url":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.BannerURL }))
	case "company.photo_first":
		if len(row.Photos) == 0 {
			return ""
		}
		return row.Photos[0].PhotoURL
	case "company.photo_all":
		urls := make([]string, len(row.Photos))
		for i, photo := range row.Photos {
			urls[i] = photo.PhotoURL
		}
		return strings.Join(urls, ", ")
	case "company.contact_name":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.ContactName }))
	case "company.contact_email":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.ContactEmail }))
	case "company.contact_phone":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.ContactPhone }))
	case "company.siret":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.Siret }))
	case "company.pmr_accessible":
		if company != nil && company.PMRAccessible {
			return "true"
		}
		return "false"
	case "company.safety_measures":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.SafetyMeasures }))
	case "company.equipment_provided":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.EquipmentProvided }))
	case "company.equipment_required":
		return strOrEmpty(companyField(company, func(c *Company) *string { return c.EquipmentRequired }))
	}

	if slot == nil {
		return ""
	}

	switch source {
	case "slot.id":
		return slot.ID.String()
	case "slot.start_datetime":
		return slot.StartDatetime.Format(time.RFC3339)
	case "slot.end_datetime":
		return slot.EndDatetime.Format(time.RFC3339)
	case "slot.date":
		return formatDate(slot.StartDatetime)
	case "slot.start_time":
		return formatTime(slot.StartDatetime)
	case "slot.end_time":
		return formatTime(slot.EndDatetime)
	case "slot.day_name":
		return frenchDays[slot.StartDatetime.Weekday()]
	case "slot.date_range":
		start := formatDate(slot.StartDatetime)
		end := formatDate(slot.EndDatetime)
		if start != end {
			return start + " - " + end
		}
		return start
	case "slot.created_at":
		return slot.CreatedAt.Format(time.RFC3339)
	case "slot.updated_at":
		return slot.UpdatedAt.Format(time.RFC3339)
	case "slot.capacity":
		return strconv.Itoa(slot.Capacity)
	case "slot.available_spots":
		return strconv.Itoa(slot.AvailableSpots)
	case "slot.visit_type":
		return slot.VisitType
	case "slot.description":
		return strOrEmpty(slot.Description)
	case "slot.specific_instructions":
		return strOrEmpty(slot.SpecificInstructions)
	case "slot.status":
		return string(slot.Status)
	case "slot.requires_manual_validation":
		if slot.RequiresManualValidation {
			return "true"
		}
		return "false"
	case "slot.bookings_total":
		return strconv.Itoa(row.Stats.TotalBookings)
	case "slot.participants_total":
		return strconv.Itoa(row.Stats.TotalParticipants)
	case "slot.participants_confirmed":
		return strconv.Itoa(row.Stats.ConfirmedParticipants)
	case "slot.participants_pending":
		return strconv.Itoa(row.Stats.PendingParticipants)
	case "slot.participants_cancelled":
		return strconv.Itoa(row.Stats.CancelledParticipants)
	}

	return ""
}

func companyField(c *Company, pick func(*Company) *string) *string {
	if c == nil {
		return nil
	}
	return pick(c)
}

// BuildCSV renders the export: UTF-8 BOM, semicolon separator, fixed header
// row, one line per slot.
func BuildCSV(mapping ExportMapping, rows []ExportRow) []byte {
	var sb strings.Builder
	sb.WriteString("\uFEFF")

	headers := make([]string, len(DataGouvFields))
	for i, field := range DataGouvFields {
		headers[i] = EscapeCSV(field.Label)
	}
	sb.WriteString(strings.Join(headers, ";"))

	for _, row := range rows {
		values := make([]string, len(DataGouvFields))
		for i, field := range DataGouvFields {
			fm, ok := mapping[field.Field]
			if !ok || fm.Source == "" {
				values[i] = ""
				continue
			}
			if fm.Source == SourceStatic {
				values[i] = EscapeCSV(fm.StaticValue)
				continue
			}
			values[i] = EscapeCSV(ResolveSource(fm.Source, row))
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Join(values, ";"))
	}

	return []byte(sb.String())
}
