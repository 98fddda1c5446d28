package services

import "github.com/SscSPs/erp_ledger/internal/core/domain"

type templateAccount struct {
	code        string
	name        string
	accountType domain.AccountType
	parentCode  string
	system      bool
}

type chartTemplate struct {
	defaultCurrency string
	// parents are listed before their children
	accounts []templateAccount
}

var chartTemplates = map[domain.ChartTemplate]chartTemplate{
	domain.TemplateFrench:    frenchChart,
	domain.TemplateSYSCOHADA: syscohadaChart,
}

// frenchChart is a starter subset of the Plan Comptable Général.
var frenchChart = chartTemplate{
	defaultCurrency: "EUR",
	accounts: []templateAccount{
		{code: "10", name: "Capital et réserves", accountType: domain.Equity, system: true},
		{code: "101", name: "Capital", accountType: domain.Equity, parentCode: "10", system: true},
		{code: "106", name: "Réserves", accountType: domain.Equity, parentCode: "10"},
		{code: "108", name: "Compte de l'exploitant", accountType: domain.Equity, parentCode: "10"},
		{code: "12", name: "Résultat de l'exercice", accountType: domain.Equity, system: true},
		{code: "120", name: "Résultat de l'exercice (bénéfice)", accountType: domain.Equity, parentCode: "12", system: true},
		{code: "129", name: "Résultat de l'exercice (perte)", accountType: domain.Equity, parentCode: "12", system: true},
		{code: "164", name: "Emprunts auprès des établissements de crédit", accountType: domain.Liability},
		{code: "21", name: "Immobilisations corporelles", accountType: domain.Asset},
		{code: "213", name: "Constructions", accountType: domain.Asset, parentCode: "21"},
		{code: "215", name: "Installations techniques, matériel et outillage", accountType: domain.Asset, parentCode: "21"},
		{code: "218", name: "Autres immobilisations corporelles", accountType: domain.Asset, parentCode: "21"},
		{code: "281", name: "Amortissements des immobilisations corporelles", accountType: domain.Asset},
		{code: "37", name: "Stocks de marchandises", accountType: domain.Asset},
		{code: "40", name: "Fournisseurs et comptes rattachés", accountType: domain.Liability},
		{code: "401", name: "Fournisseurs", accountType: domain.Liability, parentCode: "40"},
		{code: "404", name: "Fournisseurs d'immobilisations", accountType: domain.Liability, parentCode: "40"},
		{code: "41", name: "Clients et comptes rattachés", accountType: domain.Asset},
		{code: "411", name: "Clients", accountType: domain.Asset, parentCode: "41"},
		{code: "416", name: "Clients douteux ou litigieux", accountType: domain.Asset, parentCode: "41"},
		{code: "421", name: "Personnel, rémunérations dues", accountType: domain.Liability},
		{code: "431", name: "Sécurité sociale", accountType: domain.Liability},
		{code: "44566", name: "TVA déductible sur autres biens et services", accountType: domain.Asset},
		{code: "44571", name: "TVA collectée", accountType: domain.Liability},
		{code: "455", name: "Associés, comptes courants", accountType: domain.Liability},
		{code: "512", name: "Banques", accountType: domain.Asset},
		{code: "53", name: "Caisse", accountType: domain.Asset},
		{code: "60", name: "Achats", accountType: domain.Expense},
		{code: "601", name: "Achats stockés, matières premières", accountType: domain.Expense, parentCode: "60"},
		{code: "606", name: "Achats non stockés de matières et fournitures", accountType: domain.Expense, parentCode: "60"},
		{code: "607", name: "Achats de marchandises", accountType: domain.Expense, parentCode: "60"},
		{code: "613", name: "Locations", accountType: domain.Expense},
		{code: "622", name: "Rémunérations d'intermédiaires et honoraires", accountType: domain.Expense},
		{code: "626", name: "Frais postaux et de télécommunications", accountType: domain.Expense},
		{code: "627", name: "Services bancaires et assimilés", accountType: domain.Expense},
		{code: "641", name: "Rémunérations du personnel", accountType: domain.Expense},
		{code: "645", name: "Charges de sécurité sociale et de prévoyance", accountType: domain.Expense},
		{code: "661", name: "Charges d'intérêts", accountType: domain.Expense},
		{code: "681", name: "Dotations aux amortissements et provisions", accountType: domain.Expense},
		{code: "70", name: "Ventes", accountType: domain.Revenue},
		{code: "701", name: "Ventes de produits finis", accountType: domain.Revenue, parentCode: "70"},
		{code: "706", name: "Prestations de services", accountType: domain.Revenue, parentCode: "70"},
		{code: "707", name: "Ventes de marchandises", accountType: domain.Revenue, parentCode: "70"},
		{code: "758", name: "Produits divers de gestion courante", accountType: domain.Revenue},
		{code: "768", name: "Autres produits financiers", accountType: domain.Revenue},
	},
}

// syscohadaChart is a starter subset of the OHADA chart of accounts.
var syscohadaChart = chartTemplate{
	defaultCurrency: "XOF",
	accounts: []templateAccount{
		{code: "10", name: "Capital", accountType: domain.Equity, system: true},
		{code: "101", name: "Capital social", accountType: domain.Equity, parentCode: "10", system: true},
		{code: "111", name: "Réserve légale", accountType: domain.Equity},
		{code: "121", name: "Report à nouveau créditeur", accountType: domain.Equity},
		{code: "13", name: "Résultat net de l'exercice", accountType: domain.Equity, system: true},
		{code: "131", name: "Résultat net : bénéfice", accountType: domain.Equity, parentCode: "13", system: true},
		{code: "139", name: "Résultat net : perte", accountType: domain.Equity, parentCode: "13", system: true},
		{code: "162", name: "Emprunts et dettes auprès des établissements de crédit", accountType: domain.Liability},
		{code: "24", name: "Matériel, mobilier et actifs biologiques", accountType: domain.Asset},
		{code: "241", name: "Matériel et outillage industriel et commercial", accountType: domain.Asset, parentCode: "24"},
		{code: "244", name: "Matériel et mobilier de bureau", accountType: domain.Asset, parentCode: "24"},
		{code: "245", name: "Matériel de transport", accountType: domain.Asset, parentCode: "24"},
		{code: "284", name: "Amortissements du matériel", accountType: domain.Asset},
		{code: "31", name: "Marchandises", accountType: domain.Asset},
		{code: "40", name: "Fournisseurs et comptes rattachés", accountType: domain.Liability},
		{code: "401", name: "Fournisseurs, dettes en compte", accountType: domain.Liability, parentCode: "40"},
		{code: "41", name: "Clients et comptes rattachés", accountType: domain.Asset},
		{code: "411", name: "Clients", accountType: domain.Asset, parentCode: "41"},
		{code: "421", name: "Personnel, avances et acomptes", accountType: domain.Liability},
		{code: "431", name: "Sécurité sociale", accountType: domain.Liability},
		{code: "4431", name: "TVA facturée sur ventes", accountType: domain.Liability},
		{code: "4452", name: "TVA récupérable sur achats", accountType: domain.Asset},
		{code: "521", name: "Banques locales", accountType: domain.Asset},
		{code: "571", name: "Caisse siège social", accountType: domain.Asset},
		{code: "60", name: "Achats et variations de stocks", accountType: domain.Expense},
		{code: "601", name: "Achats de marchandises", accountType: domain.Expense, parentCode: "60"},
		{code: "604", name: "Achats stockés de matières et fournitures consommables", accountType: domain.Expense, parentCode: "60"},
		{code: "605", name: "Autres achats", accountType: domain.Expense, parentCode: "60"},
		{code: "622", name: "Locations et charges locatives", accountType: domain.Expense},
		{code: "631", name: "Frais bancaires", accountType: domain.Expense},
		{code: "661", name: "Rémunérations directes versées au personnel national", accountType: domain.Expense},
		{code: "664", name: "Charges sociales", accountType: domain.Expense},
		{code: "671", name: "Intérêts des emprunts", accountType: domain.Expense},
		{code: "681", name: "Dotations aux amortissements d'exploitation", accountType: domain.Expense},
		{code: "70", name: "Ventes", accountType: domain.Revenue},
		{code: "701", name: "Ventes de marchandises", accountType: domain.Revenue, parentCode: "70"},
		{code: "702", name: "Ventes de produits finis", accountType: domain.Revenue, parentCode: "70"},
		{code: "706", name: "Services vendus", accountType: domain.Revenue, parentCode: "70"},
		{code: "771", name: "Intérêts de prêts", accountType: domain.Revenue},
	},
}
