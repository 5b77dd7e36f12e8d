package audit

import "github.com/ben-kodbiz/quranlingo/internal/model"

// referenceCounts holds the true ayah count of the surahs the dataset is
// curated against. It is an allow-list, not the full canon.
var referenceCounts = map[string]int{
	"al-fatihah":    7,
	"al-ikhlas":     4,
	"an-nas":        6,
	"al-falaq":      5,
	"al-kafirun":    6,
	"al-masad":      5,
	"an-nasr":       3,
	"al-kawthar":    3,
	"al-maun":       7,
	"quraysh":       4,
	"al-fil":        5,
	"al-humazah":    9,
	"al-asr":        3,
	"at-takathur":   8,
	"al-qariah":     11,
	"al-adiyat":     11,
	"az-zalzalah":   8,
	"al-bayyinah":   8,
	"al-qadr":       5,
	"al-alaq":       19,
	"at-tin":        8,
	"ash-sharh":     8,
	"ad-duha":       11,
	"al-lail":       21,
	"ash-shams":     15,
	"al-balad":      20,
	"al-fajr":       30,
	"al-ghashiyah":  26,
	"al-ala":        19,
	"at-tariq":      17,
	"al-buruj":      22,
	"al-inshiqaq":   25,
	"al-mutaffifin": 36,
	"al-infitar":    19,
	"at-takwir":     29,
	"abasa":         42,
	"an-naziat":     46,
	"an-naba":       40,
}

// ReferenceCounts returns a copy of the built-in table merged with extra;
// entries in extra win
func ReferenceCounts(extra map[string]int) map[string]int {
	counts := make(map[string]int, len(referenceCounts)+len(extra))
	for id, n := range referenceCounts {
		counts[id] = n
	}
	for id, n := range extra {
		counts[id] = n
	}
	return counts
}

// Reconciliation is the outcome of comparing a dataset with reference counts
type Reconciliation struct {
	Checked  []model.SurahCount // Every surah found in the reference table, in dataset order
	Deficits []model.Deficit    // Surahs with fewer entries than their reference count
}

// Reconcile compares each surah whose id appears in reference with its true
// count. Surahs absent from reference are skipped.
func Reconcile(ds *model.Dataset, reference map[string]int) Reconciliation {
	var r Reconciliation
	for _, s := range ds.Surahs {
		actual, ok := reference[s.ID]
		if !ok {
			continue
		}

		current := len(s.Ayahs)
		r.Checked = append(r.Checked, model.SurahCount{
			ID:      s.ID,
			Title:   s.Title,
			Current: current,
			Actual:  actual,
		})

		if current < actual {
			r.Deficits = append(r.Deficits, model.Deficit{
				ID:      s.ID,
				Title:   s.Title,
				Missing: actual - current,
				Current: current,
				Actual:  actual,
			})
		}
	}
	return r
}
