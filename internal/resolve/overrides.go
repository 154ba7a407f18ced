package resolve

// DefaultOverrides returns the curated name-to-domain table for Texas
// districts whose real domain does not follow any slug pattern, or that are
// queried often enough to be worth skipping the probe. Returned as a fresh
// copy so callers can layer config on top without touching the baseline.
func DefaultOverrides() map[string]string {
	return map[string]string{
		"Frisco ISD":                        "friscoisd.org",
		"Leander ISD":                       "leanderisd.org",
		"Round Rock ISD":                    "roundrockisd.org",
		"Keller ISD":                        "kellerisd.net",
		"Humble ISD":                        "humbleisd.net",
		"Prosper ISD":                       "prosper-isd.net",
		"Georgetown ISD":                    "georgetownisd.org",
		"Hays CISD":                         "hayscisd.net",
		"Aledo ISD":                         "aledoisd.org",
		"Dripping Springs ISD":              "dsisdtx.us",
		"Lake Travis ISD":                   "ltisdschools.org",
		"Boerne ISD":                        "boerneisd.net",
		"Plano ISD":                         "pisd.edu",
		"McKinney ISD":                      "mckinneyisd.net",
		"Allen ISD":                         "allenisd.org",
		"Denton ISD":                        "dentonisd.org",
		"Northwest ISD":                     "nisdtx.org",
		"Mansfield ISD":                     "mansfieldisd.org",
		"Coppell ISD":                       "coppellisd.com",
		"Southlake Carroll ISD":             "southlakecarroll.edu",
		"Grapevine-Colleyville ISD":         "gcisd.net",
		"Highland Park ISD":                 "hpisd.org",
		"Eanes ISD":                         "eanesisd.net",
		"Wylie ISD":                         "wylieisd.net",
		"Lovejoy ISD":                       "lovejoyisd.com",
		"Rockwall ISD":                      "rockwallisd.com",
		"Midlothian ISD":                    "misd.gs",
		"Forney ISD":                        "forneyisd.net",
		"Little Elm ISD":                    "leisd.net",
		"Comal ISD":                         "comalisd.org",
		"Conroe ISD":                        "conroeisd.net",
		"Cypress-Fairbanks ISD":             "cfisd.net",
		"Spring Branch ISD":                 "springbranchisd.com",
		"Klein ISD":                         "kleinisd.net",
		"Tomball ISD":                       "tomballisd.net",
		"Pearland ISD":                      "pearlandisd.org",
		"Clear Creek ISD":                   "ccisd.net",
		"Fort Bend ISD":                     "fortbendisd.com",
		"Katy ISD":                          "katyisd.org",
		"Lamar CISD":                        "lcisd.org",
		"Pasadena ISD":                      "pasadenaisd.org",
		"Spring ISD":                        "springisd.org",
		"Aldine ISD":                        "aldineisd.org",
		"Houston ISD":                       "houstonisd.org",
		"Dallas ISD":                        "dallasisd.org",
		"Fort Worth ISD":                    "fwisd.org",
		"Austin ISD":                        "austinisd.org",
		"San Antonio ISD":                   "saisd.net",
		"Arlington ISD":                     "aisd.net",
		"Garland ISD":                       "garlandisd.net",
		"Irving ISD":                        "irvingisd.net",
		"Mesquite ISD":                      "mesquiteisd.org",
		"Richardson ISD":                    "risd.org",
		"Carrollton-Farmers Branch ISD":     "cfbisd.edu",
		"Lewisville ISD":                    "lisd.net",
		"Birdville ISD":                     "birdvilleschools.net",
		"Crowley ISD":                       "crowleyisdtx.org",
		"Eagle Mountain-Saginaw ISD":        "emsisd.com",
		"Hurst-Euless-Bedford ISD":          "hebisd.edu",
		"Waxahachie ISD":                    "wisd.org",
		"Weatherford ISD":                   "weatherfordisd.com",
		"Burleson ISD":                      "burleson.k12.tx.us",
		"Joshua ISD":                        "joshuaisd.org",
		"Cleburne ISD":                      "c-isd.com",
		"Granbury ISD":                      "granburyisd.org",
		"New Braunfels ISD":                 "nbisd.org",
		"Schertz-Cibolo-Universal City ISD": "scuc.txed.net",
		"Judson ISD":                        "judsonisd.org",
		"North East ISD":                    "neisd.net",
		"Northside ISD":                     "nisd.net",
		"San Marcos CISD":                   "smcisd.net",
		"Pflugerville ISD":                  "pfisd.net",
		"Manor ISD":                         "manorisd.net",
		"Del Valle ISD":                     "dvisd.net",
		"Cedar Park":                        "leanderisd.org", // served by Leander ISD
		"Bastrop ISD":                       "bfrisk.org",
		"Lockhart ISD":                      "lockhartisd.org",
		"Seguin ISD":                        "seguinisd.net",
		"Killeen ISD":                       "killeenisd.org",
		"Temple ISD":                        "tisd.org",
		"Belton ISD":                        "bisd.net",
		"Waco ISD":                          "wacoisd.org",
		"Midway ISD":                        "midwayisd.org",
		"Bryan ISD":                         "bryanisd.org",
		"College Station ISD":               "csisd.org",
		"Tyler ISD":                         "tylerisd.org",
		"Longview ISD":                      "lisd.org",
		"Nacogdoches ISD":                   "nacisd.org",
		"Lufkin ISD":                        "lufkinisd.org",
		"Texarkana ISD":                     "txkisd.net",
		"Amarillo ISD":                      "amaisd.org",
		"Lubbock ISD":                       "lubbockisd.org",
		"Midland ISD":                       "midlandisd.net",
		"Odessa":                            "ectorcountyisd.org",
		"Ector County ISD":                  "ectorcountyisd.org",
		"El Paso ISD":                       "episd.org",
		"Socorro ISD":                       "sisd.net",
		"Ysleta ISD":                        "yisd.net",
		"Corpus Christi ISD":                "ccisd.us",
		"Flour Bluff ISD":                   "flourbluffschools.net",
		"Calallen ISD":                      "calallen.org",
		"Laredo ISD":                        "laredoisd.org",
		"United ISD":                        "uisd.net",
		"McAllen ISD":                       "mcallenisd.org",
		"Edinburg CISD":                     "ecisd.us",
		"Pharr-San Juan-Alamo ISD":          "psjaisd.us",
		"Brownsville ISD":                   "bisd.us",
		"Harlingen CISD":                    "hcisd.org",
	}
}
