package docindex

// DefaultBookTitles maps book directory slugs, with any ds_ or bk_ prefix
// already removed, to the titles shown in search results.
var DefaultBookTitles = map[string]string{
	// Data Platform
	"HDP_RelNotes":                  "Release Notes",
	"releasenotes_hdp_2.0":          "Release Notes",
	"releasenotes_hdp_2.1":          "Release Notes",
	"releasenotes_hdp_2.2":          "Release Notes",
	"releasenotes_hdp_2.3":          "Release Notes",
	"releasenotes_hdp_2.4":          "Release Notes",
	"releasenotes_hdp_2.5":          "Release Notes",
	"release-notes":                 "Release Notes",
	"getting-started-guide":         "Getting Started Guide",
	"cluster-planning-guide":        "Cluster Planning Guide",
	"installing_manually_book":      "Non-Ambari Cluster Installation Guide",
	"upgrading_hdp_manually":        "Non-Ambari Cluster Upgrade Guide",
	"command-line-upgrade":          "Command Line Upgrade",
	"command-line-installation":     "Command Line Installation",
	"hadoop-ha":                     "Hadoop High Availability Guide",
	"Security_Guide":                "Security Guide",
	"security":                      "Security Guide",
	"hdfs_admin_tools":              "HDFS Administration Guide",
	"hdfs-administration":           "HDFS Administration Guide",
	"yarn_resource_mgt":             "YARN Resource Management",
	"yarn-resource-management":      "YARN Resource Management",
	"performance_tuning":            "Performance Tuning Guide",
	"hive-performance-tuning":       "Apache Hive Performance Tuning",
	"dataintegration":               "Data Integration Services with HDP",
	"data_movement":                 "Data Movement and Integration",
	"data-movement-and-integration": "Data Movement and Integration",
	"data_governance":               "Data Governance Guide",
	"data-access":                   "Data Access Guide",
	"spark-guide":                   "Apache Spark Component Guide",
	"spark-component-guide":         "Apache Spark Component Guide",
	"kafka-user-guide":              "Apache Kafka User Guide",
	"kafka-component-guide":         "Apache Kafka Component Guide",
	"storm-user-guide":              "Apache Storm User Guide",
	"storm-component-guide":         "Apache Storm Component Guide",
	"hbase_snapshots_guide":         "HBase Snapshots Guide",
	"system-admin-guide":            "System Administration Guides",
	"reference":                     "Reference Guide",
	"user-guide":                    "User Guide",
	"using_apache_hadoop":           "Using Apache Hadoop",
	"ambari-user-guide":             "Ambari User Guide",
	"Monitoring_Hadoop_Book":        "Monitoring HDP Guide",
	"Clust_Plan_Gd_Win":             "Cluster Planning Guide for Windows",
	"HDP_Install_Win":               "Installing HDP on Windows",
	"HDP_Install_Upgrade_Win":       "Installing and Upgrading HDP for Windows",
	"installing_hdp_for_windows":    "Installing HDP on Windows",
	"upgrading_hdp_for_windows":     "Upgrading HDP on Windows",
	"HDP_RelNotes_Win":              "Release Notes for Windows",
	"HDP_Win_Getting_Started":       "Getting Started for Windows",
	"hdp-win-getting-started":       "Getting Started for Windows",
	"hdp1-system-admin-guide":       "System Administration Guide",
	"reference-guide":               "Reference Guide",
	"searching-data-solr":           "Searching Data with Apache Solr",
	"hadoop-in-practice":            "Hadoop in Practice",
	"workflow-management":           "Workflow Management",
	"governance":                    "Data Governance",
	"zeppelin-component-guide":      "Apache Zeppelin Component Guide",
	"zeppelin-user-guide":           "Apache Zeppelin User Guide",
	"hive-hbase-acid":               "Apache Hive ACID Transactions",

	// Ambari
	"ambari_security":        "Ambari Security Guide",
	"ambari_reference_guide": "Ambari Reference Guide",
	"ambari_reference":       "Ambari Reference Guide",
	"ambari_upgrade":         "Ambari Upgrade Guide",
	"ambari-upgrade":         "Ambari Upgrade Guide",
	"ambari_views_guide":     "Ambari Views Guide",
	"ambari-views":           "Ambari Views Guide",
	"Ambari_Users_Guide":     "Ambari User's Guide",
	"ambari_users_guide":     "Ambari User's Guide",
	"Ambari_Admin_Guide":     "Ambari Administration Guide",
	"ambari-administration":  "Ambari Administration Guide",
	"Ambari_Install_v20":     "Ambari Installation Guide",
	"Installing_HDP_AMB":     "Automated Install with Ambari",
	"ambari-installation":    "Ambari Installation Guide",
	"ambari_troubleshooting": "Ambari Troubleshooting Guide",
	"ambari-troubleshooting": "Ambari Troubleshooting Guide",
	"Ambari_Doc_Suite":       "Ambari Documentation Suite",
	"Ambari_RelNotes":        "Ambari Release Notes",
	"ambari-release-notes":   "Ambari Release Notes",
	"ambari_blueprints":      "Ambari Blueprints",

	// DataFlow
	"HDF_RelNotes":              "HDF Release Notes",
	"release-notes-hdf":         "HDF Release Notes",
	"installing_hdf":            "Installing HDF",
	"installation":              "Installation Guide",
	"dataflow-user-guide":       "DataFlow User Guide",
	"dataflow-admin-guide":      "DataFlow Administration Guide",
	"dataflow-overview":         "DataFlow Overview",
	"getting-started-with-nifi": "Getting Started with Apache NiFi",
	"nifi-expression-language":  "Apache NiFi Expression Language Guide",
	"hdf-security":              "HDF Security Guide",

	// SmartSense
	"smartsense_admin":         "SmartSense Administration Guide",
	"smartsense_user_guide":    "SmartSense User Guide",
	"smartsense_release_notes": "SmartSense Release Notes",
	"smartsense-installation":  "SmartSense Installation Guide",

	// Cloudbreak
	"cldbrk_install":           "Cloudbreak Installation Guide",
	"cloudbreak-installation":  "Cloudbreak Installation Guide",
	"cloudbreak-user-guide":    "Cloudbreak User Guide",
	"cloudbreak-release-notes": "Cloudbreak Release Notes",
}
