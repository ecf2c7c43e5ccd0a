// Command geoipdump is a thin demo CLI: it opens a legacy GeoIP database and
// prints whichever record type the detected edition supports for a given
// address. It is an external collaborator per the library's scope, not part
// of the tested core.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/geolegacy/geoip"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <database-path> <address>\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	path, addr := flag.Arg(0), flag.Arg(1)

	db, err := geoip.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "geoipdump:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := dump(db, addr); err != nil {
		fmt.Fprintln(os.Stderr, "geoipdump:", err)
		os.Exit(1)
	}
}

func dump(db *geoip.DB, addr string) error {
	switch db.DatabaseType() {
	case geoip.EditionCityRev0, geoip.EditionCityRev1, geoip.EditionCityRev0V6, geoip.EditionCityRev1V6:
		rec, err := db.City(addr)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println("no data")
			return nil
		}
		fmt.Printf("%s, %s (%s) %.4f,%.4f %s\n", rec.City, rec.ISO2, rec.RegionCode, rec.Latitude, rec.Longitude, rec.TimeZone)
	case geoip.EditionRegionRev0, geoip.EditionRegionRev1:
		rec, err := db.Region(addr)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println("no data")
			return nil
		}
		fmt.Printf("%s (%s) %s\n", rec.ISO2, rec.RegionCode, rec.TimeZone)
	case geoip.EditionASNum, geoip.EditionASNumV6:
		rec, err := db.ASN(addr)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println("no data")
			return nil
		}
		fmt.Printf("%s %s\n", rec.Number, rec.Description)
	case geoip.EditionNetSpeed, geoip.EditionNetSpeedRev1, geoip.EditionNetSpeedRev1V6:
		rec, err := db.NetSpeed(addr)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println("no data")
			return nil
		}
		if rec.HasNumeric {
			fmt.Println(rec.Numeric)
		} else {
			fmt.Println(rec.Text)
		}
	case geoip.EditionISP, geoip.EditionOrg, geoip.EditionDomain, geoip.EditionRegistrar,
		geoip.EditionUserType, geoip.EditionLocationA, geoip.EditionAccuracyRadius,
		geoip.EditionISPV6, geoip.EditionOrgV6, geoip.EditionDomainV6, geoip.EditionRegistrarV6,
		geoip.EditionUserTypeV6, geoip.EditionLocationAV6, geoip.EditionAccuracyRadiusV6,
		geoip.EditionCountryConf, geoip.EditionCityConf, geoip.EditionRegionConf, geoip.EditionPostalConf:
		rec, err := db.Organization(addr)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println("no data")
			return nil
		}
		fmt.Println(rec.Name)
	default:
		rec, err := db.Country(addr)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println("no data")
			return nil
		}
		fmt.Printf("%s %s %s\n", rec.ISO2, rec.ISO3, rec.Name)
	}
	return nil
}
