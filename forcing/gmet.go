package forcing

import (
	"fmt"
	"math"

	"github.com/maseology/goHydro/gmet"
	"github.com/maseology/mmio"
)

// FromGMET builds a station-average hyetograph from a gridded met file
// (NetCDF or CSV). intvl is the met timestep [s]; rainfall depths per step
// [mm] are converted to intensities [m/s] on a clock starting at zero.
func FromGMET(fp, prfx string, intvl float64) (*Hyetograph, error) {
	g, err := func() (*gmet.GMET, error) {
		switch mmio.GetExtension(fp) {
		case ".nc":
			return gmet.LoadNC(fp, prfx, []string{"rainfall_amount"})
		case ".csv":
			return gmet.LoadCsv(fp, "precipitation_amount")
		default:
			return nil, fmt.Errorf("forcing.FromGMET: unknown forcing type %s", fp)
		}
	}()
	if err != nil {
		return nil, fmt.Errorf("forcing.FromGMET: %v", err)
	}
	if g.Nts == 0 {
		return nil, fmt.Errorf("forcing.FromGMET: no timesteps in %s", fp)
	}

	dat := g.GetAllData("rainfall_amount")
	t := make([]float64, g.Nts+1)
	p := make([]float64, g.Nts)
	for j := 0; j < g.Nts; j++ {
		t[j] = float64(j) * intvl
		sum, n := 0., 0
		for i := range dat {
			v := dat[i][j]
			if math.IsNaN(v) || v < 0. {
				continue
			}
			sum += v
			n++
		}
		if n > 0 {
			p[j] = sum / float64(n) / 1000. / intvl // [mm/step] to [m/s]
		}
	}
	t[g.Nts] = float64(g.Nts) * intvl
	return NewHyetograph(t, p)
}
