package validation

import (
	"fmt"
	"strings"

	"simhire-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly Indonesian labels
var FieldLabels = map[string]string{
	// Auth & profile fields
	"Name":        "Nama",
	"Email":       "Email",
	"Password":    "Password",
	"Role":        "Peran",
	"CompanyName": "Nama Perusahaan",

	// Posting fields
	"Title":           "Judul Lowongan",
	"Position":        "Posisi",
	"Department":      "Departemen",
	"Description":     "Deskripsi",
	"EmploymentType":  "Tipe Pekerjaan",
	"ExperienceLevel": "Tingkat Pengalaman",
	"LocationMode":    "Mode Lokasi",
	"Location":        "Lokasi",
	"Min":             "Gaji Minimum",
	"Max":             "Gaji Maksimum",
	"Currency":        "Mata Uang",
	"Requirements":    "Persyaratan",
	"Skills":          "Keahlian",
	"Benefits":        "Benefit",
	"Status":          "Status",
	"DurationMonths":  "Durasi (Bulan)",
	"Quota":           "Kuota",

	// Application fields
	"JobID":        "Lowongan",
	"InternshipID": "Magang",
	"CoverLetter":  "Surat Lamaran",
	"University":   "Universitas",
	"Major":        "Jurusan",
	"Semester":     "Semester",
	"GPA":          "IPK",
	"Stage":        "Status Lamaran",
	"Note":         "Catatan",
	"Score":        "Nilai",

	// Simulasi fields
	"CategoryID":       "Kategori",
	"TotalScore":       "Skor Total",
	"MaxScore":         "Skor Maksimum",
	"Technical":        "Skor Teknis",
	"Creativity":       "Skor Kreativitas",
	"Efficiency":       "Skor Efisiensi",
	"Communication":    "Skor Komunikasi",
	"TimeSpentSeconds": "Durasi Pengerjaan",

	// Pagination
	"Page":  "Halaman",
	"Limit": "Batas",
}

// ValidationRules contains max/min values for validation messages
var ValidationRules = map[string]map[string]interface{}{
	"Title":          {"min": 3, "max": 200},
	"Position":       {"min": 3, "max": 200},
	"Description":    {"min": 50, "max": 5000},
	"DurationMonths": {"min": 1, "max": 24, "unit": "bulan"},
	"Semester":       {"min": 1, "max": 14},
	"Limit":          {"min": 1, "max": 100},
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		msg := formatSingleError(e)
		messages = append(messages, msg)
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s: Wajib diisi", label)

	case "min":
		if rules, ok := ValidationRules[fieldName]; ok {
			if unit, hasUnit := rules["unit"]; hasUnit {
				return fmt.Sprintf("%s: Minimal %s %s", label, param, unit)
			}
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Minimal %s karakter", label, param)
		}
		return fmt.Sprintf("%s: Minimal %s", label, param)

	case "max":
		if rules, ok := ValidationRules[fieldName]; ok {
			if unit, hasUnit := rules["unit"]; hasUnit {
				return fmt.Sprintf("%s: Maksimal %s %s", label, param, unit)
			}
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Maksimal %s karakter", label, param)
		}
		return fmt.Sprintf("%s: Maksimal %s", label, param)

	case "len":
		return fmt.Sprintf("%s: Harus tepat %s karakter", label, param)

	case "oneof":
		options := formatOneOfOptions(param)
		return fmt.Sprintf("%s: Harus salah satu dari: %s", label, options)

	case "email":
		return fmt.Sprintf("%s: Format email tidak valid", label)

	case "url":
		return fmt.Sprintf("%s: Format URL tidak valid", label)

	case "valid_name":
		return fmt.Sprintf("%s: Hanya boleh huruf, spasi, dan tanda baca umum (. ' - /)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: Tidak boleh mengandung emoji atau simbol khusus", label)

	case "job_stage":
		return fmt.Sprintf("%s: Harus salah satu dari: %s", label, domain.JobVocabulary.String())

	case "internship_stage":
		return fmt.Sprintf("%s: Harus salah satu dari: %s", label, domain.InternshipVocabulary.String())

	case "uuid":
		return fmt.Sprintf("%s: ID tidak valid", label)

	case "gt":
		return fmt.Sprintf("%s: Harus lebih besar dari %s", label, param)

	case "required_if":
		return fmt.Sprintf("%s: Wajib diisi", label)

	case "eqfield":
		paramLabel := getFieldLabel(param)
		return fmt.Sprintf("%s: Harus sama dengan %s", label, paramLabel)

	case "gtefield":
		paramLabel := getFieldLabel(param)
		return fmt.Sprintf("%s: Tidak boleh lebih kecil dari %s", label, paramLabel)

	case "ltefield":
		paramLabel := getFieldLabel(param)
		return fmt.Sprintf("%s: Tidak boleh melebihi %s", label, paramLabel)

	case "gtfield":
		paramLabel := getFieldLabel(param)
		return fmt.Sprintf("%s: Harus lebih besar dari %s", label, paramLabel)

	case "ltfield":
		paramLabel := getFieldLabel(param)
		return fmt.Sprintf("%s: Harus lebih kecil dari %s", label, paramLabel)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: Validasi gagal (%s)", label, tag)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}

// formatOneOfOptions formats oneof options for display
func formatOneOfOptions(param string) string {
	options := strings.Split(param, " ")
	formatted := make([]string, len(options))
	for i, opt := range options {
		formatted[i] = formatEnumValue(opt)
	}
	return strings.Join(formatted, ", ")
}

// formatEnumValue formats enum values for display
func formatEnumValue(value string) string {
	// Map common enum values to Indonesian
	enumLabels := map[string]string{
		"IDR":       "Rupiah (IDR)",
		"USD":       "Dolar AS (USD)",
		"full-time": "Penuh Waktu",
		"part-time": "Paruh Waktu",
		"contract":  "Kontrak",
		"freelance": "Lepas",
		"onsite":    "Di Kantor",
		"remote":    "Jarak Jauh",
		"hybrid":    "Hybrid",
		"entry":     "Pemula",
		"junior":    "Junior",
		"mid":       "Menengah",
		"senior":    "Senior",
		"lead":      "Lead",
		"candidate": "Kandidat",
		"company":   "Perusahaan",
		"applied":   "Melamar",
		"screening": "Seleksi Berkas",
		"reviewed":  "Ditinjau",
		"interview": "Wawancara",
		"offer":     "Penawaran",
		"accepted":  "Diterima",
		"hired":     "Direkrut",
		"rejected":  "Ditolak",
		"active":    "Aktif",
		"open":      "Dibuka",
		"draft":     "Draf",
		"paused":    "Dijeda",
		"closed":    "Ditutup",
	}

	if label, ok := enumLabels[value]; ok {
		return label
	}
	return value
}
